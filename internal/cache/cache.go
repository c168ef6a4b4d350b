package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/tastavino/recipe-search/internal/domain"
)

// Source is the load capability an entity brings to the cache: detail by
// id, detail by locale-scoped slug, and the locale listing. One generic
// caching function over this interface replaces per-entity cache classes.
type Source[T any] interface {
	LoadByID(ctx context.Context, locale domain.Locale, id int64) (*T, error)
	LoadBySlug(ctx context.Context, locale domain.Locale, slug string) (*T, error)
	ListAll(ctx context.Context, locale domain.Locale) ([]T, error)
}

// Cache is a read-through cache over one entity type. On a miss the
// underlying load executes and the result is stored before returning.
// Concurrent misses for one key may both execute the load; loads are
// idempotent reads, so no stampede protection is applied.
//
// A cache-backend failure is never a request failure: it is logged and the
// call falls through to the authoritative store.
type Cache[T any] struct {
	entity  string
	store   Store
	source  Source[T]
	locales []domain.Locale
	ttl     time.Duration

	id      func(*T) int64
	slugFor func(*T, domain.Locale) (string, bool)
}

// GetOne resolves identifier as a numeric id when it parses as one, and as
// a locale-scoped slug otherwise. A nil result means absent.
func (c *Cache[T]) GetOne(ctx context.Context, locale domain.Locale, identifier string) (*T, error) {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return c.GetByID(ctx, locale, id)
	}
	return c.GetBySlug(ctx, locale, identifier)
}

func (c *Cache[T]) GetByID(ctx context.Context, locale domain.Locale, id int64) (*T, error) {
	key := detailKey(c.entity, locale, id)
	if raw, ok := c.read(ctx, key); ok {
		var value T
		if err := json.Unmarshal([]byte(raw), &value); err == nil {
			return &value, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}

	value, err := c.source.LoadByID(ctx, locale, id)
	if err != nil || value == nil {
		return value, err
	}
	c.write(ctx, key, value)
	return value, nil
}

// GetBySlug resolves the slug through the cached slug-to-id mapping. A
// fresh resolution proactively warms the detail entry with the entity it
// already loaded, so the whole lookup costs a single load.
func (c *Cache[T]) GetBySlug(ctx context.Context, locale domain.Locale, slug string) (*T, error) {
	key := slugKey(c.entity, locale, slug)
	if raw, ok := c.read(ctx, key); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return c.GetByID(ctx, locale, id)
		}
		slog.Warn("discarding undecodable slug mapping", "key", key)
	}

	value, err := c.source.LoadBySlug(ctx, locale, slug)
	if err != nil || value == nil {
		return value, err
	}

	id := c.id(value)
	if err := c.store.Set(ctx, key, strconv.FormatInt(id, 10), c.ttl); err != nil {
		slog.Error("cache write failed", "key", key, "error", err)
	}
	c.write(ctx, detailKey(c.entity, locale, id), value)
	return value, nil
}

// List returns the locale's listing, read-through.
func (c *Cache[T]) List(ctx context.Context, locale domain.Locale) ([]T, error) {
	key := listKey(c.entity, locale)
	if raw, ok := c.read(ctx, key); ok {
		var values []T
		if err := json.Unmarshal([]byte(raw), &values); err == nil {
			return values, nil
		}
		slog.Warn("discarding undecodable cache entry", "key", key)
	}

	values, err := c.source.ListAll(ctx, locale)
	if err != nil {
		return nil, err
	}
	c.write(ctx, key, values)
	return values, nil
}

// Invalidate drops every key a write to the entity can have gone stale:
// all locales' listings, and the per-locale detail and slug entries keyed
// by the entity's current slug in each locale. A write may change content
// visible to any locale's listing, not just the writing request's.
func (c *Cache[T]) Invalidate(ctx context.Context, value *T) {
	id := c.id(value)
	keys := make([]string, 0, 3*len(c.locales))
	for _, locale := range c.locales {
		keys = append(keys, listKey(c.entity, locale), detailKey(c.entity, locale, id))
		if slug, ok := c.slugFor(value, locale); ok && slug != "" {
			keys = append(keys, slugKey(c.entity, locale, slug))
		}
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		slog.Error("cache invalidation failed", "entity", c.entity, "id", id, "error", err)
	}
}

// InvalidateListings drops every locale's listing entry. Used when an
// entity was already deleted from the canonical store and its per-locale
// slugs can no longer be recomputed.
func (c *Cache[T]) InvalidateListings(ctx context.Context) {
	keys := make([]string, 0, len(c.locales))
	for _, locale := range c.locales {
		keys = append(keys, listKey(c.entity, locale))
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		slog.Error("cache invalidation failed", "entity", c.entity, "error", err)
	}
}

func (c *Cache[T]) read(ctx context.Context, key string) (string, bool) {
	raw, err := c.store.Get(ctx, key)
	if err == nil {
		return raw, true
	}
	if !errors.Is(err, ErrCacheMiss) {
		slog.Error("cache read failed, falling back to store", "key", key, "error", err)
	}
	return "", false
}

func (c *Cache[T]) write(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		slog.Error("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, string(encoded), c.ttl); err != nil {
		slog.Error("cache write failed", "key", key, "error", err)
	}
}
