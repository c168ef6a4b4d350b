package cache

import (
	"context"
	"log/slog"

	"github.com/tastavino/recipe-search/internal/domain"
)

const relayBuffer = 64

// Registry enumerates the cache handlers at process start: the post and
// category caches plus the tag relay. Write-side code invalidates through
// the registry; no handler is discovered at runtime.
type Registry struct {
	Posts      *Cache[domain.Post]
	Categories *Cache[domain.Category]

	relay           *TagRelay
	postsByCategory func(ctx context.Context, categoryID int64) ([]domain.Post, error)
}

func NewRegistry(
	posts *Cache[domain.Post],
	categories *Cache[domain.Category],
	postsByCategory func(ctx context.Context, categoryID int64) ([]domain.Post, error),
	postsByTag func(ctx context.Context, tagID int64) ([]domain.Post, error),
) *Registry {
	r := &Registry{
		Posts:           posts,
		Categories:      categories,
		postsByCategory: postsByCategory,
	}
	r.relay = NewTagRelay(relayBuffer, postsByTag, func(ctx context.Context, post *domain.Post) {
		posts.Invalidate(ctx, post)
	})
	return r
}

// InvalidatePost drops the post's cache entries in every locale.
func (r *Registry) InvalidatePost(ctx context.Context, post *domain.Post) {
	r.Posts.Invalidate(ctx, post)
}

// InvalidateCategory drops the category's cache entries and cascades to
// every post cached under it: a category rename changes what those posts'
// pages and listings display.
func (r *Registry) InvalidateCategory(ctx context.Context, category *domain.Category) {
	r.Categories.Invalidate(ctx, category)

	posts, err := r.postsByCategory(ctx, category.ID)
	if err != nil {
		slog.Error("failed to resolve posts for changed category",
			"categoryId", category.ID, "error", err)
		return
	}
	for i := range posts {
		r.Posts.Invalidate(ctx, &posts[i])
	}
}

// NotifyTagChanged hands a tag change to the relay; the post lookup and
// invalidation happen on the relay's goroutine.
func (r *Registry) NotifyTagChanged(tagID int64) {
	r.relay.Notify(tagID)
}

// Run drives the tag relay until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) {
	r.relay.Run(ctx)
}
