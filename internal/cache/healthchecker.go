package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// HealthChecker reports whether the cache backend answers a ping. An
// unhealthy cache degrades every read to a direct store load, so readiness
// surfaces it.
type HealthChecker struct {
	client *redis.Client
}

func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{
		client: client,
	}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if hc.client == nil {
		return false
	}

	return hc.client.Ping(ctx).Err() == nil
}
