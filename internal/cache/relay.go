package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tastavino/recipe-search/internal/domain"
)

// TagEvent signals that a tag changed. Tags have no public page of their
// own and cannot enumerate which posts reference them without a query, so
// the write path only notifies; the query is deferred to the relay.
type TagEvent struct {
	EventID    uuid.UUID
	TagID      int64
	OccurredAt time.Time
}

// TagRelay carries tag-change notifications to the post cache over a
// bounded in-process channel. Explicit message passing, not pub/sub a
// reader has to trace through configuration.
type TagRelay struct {
	events     chan TagEvent
	postsByTag func(ctx context.Context, tagID int64) ([]domain.Post, error)
	invalidate func(ctx context.Context, post *domain.Post)
}

func NewTagRelay(
	buffer int,
	postsByTag func(ctx context.Context, tagID int64) ([]domain.Post, error),
	invalidate func(ctx context.Context, post *domain.Post),
) *TagRelay {
	return &TagRelay{
		events:     make(chan TagEvent, buffer),
		postsByTag: postsByTag,
		invalidate: invalidate,
	}
}

// Notify enqueues a tag-change event without blocking the write path. A
// full channel drops the event with a warning; the TTL on cached entries
// bounds how long the resulting staleness can last.
func (r *TagRelay) Notify(tagID int64) bool {
	event := TagEvent{
		EventID:    uuid.New(),
		TagID:      tagID,
		OccurredAt: time.Now(),
	}

	select {
	case r.events <- event:
		return true
	default:
		slog.Warn("tag relay full, dropping event", "eventId", event.EventID, "tagId", tagID)
		return false
	}
}

// Run consumes events until ctx is cancelled, invalidating every post that
// references the changed tag.
func (r *TagRelay) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("tag relay stopping")
			return
		case event := <-r.events:
			r.handle(ctx, event)
		}
	}
}

func (r *TagRelay) handle(ctx context.Context, event TagEvent) {
	posts, err := r.postsByTag(ctx, event.TagID)
	if err != nil {
		slog.Error("failed to resolve posts for changed tag",
			"eventId", event.EventID, "tagId", event.TagID, "error", err)
		return
	}

	for i := range posts {
		r.invalidate(ctx, &posts[i])
	}
	slog.Info("tag change relayed",
		"eventId", event.EventID, "tagId", event.TagID, "posts", len(posts))
}
