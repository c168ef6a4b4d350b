package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastavino/recipe-search/internal/apperr"
	"github.com/tastavino/recipe-search/internal/cache"
	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/indexing"
)

// PostLoader loads a post's full aggregate for reindexing, nil when absent.
type PostLoader interface {
	LoadAggregate(ctx context.Context, id int64) (*domain.Post, error)
}

// CategoryLoader loads a category with all its translations, nil when absent.
type CategoryLoader interface {
	LoadAllTranslations(ctx context.Context, id int64) (*domain.Category, error)
}

// EventsRouter receives entity-changed notifications from the authoring
// backend and fans them out to the document indexes and the cache layer.
// These endpoints are internal; the reverse proxy must not expose them.
type EventsRouter struct {
	e          *echo.Echo
	indexer    *indexing.EntityIndexer
	caches     *cache.Registry
	posts      PostLoader
	categories CategoryLoader
}

func NewEventsRouter(
	e *echo.Echo,
	indexer *indexing.EntityIndexer,
	caches *cache.Registry,
	posts PostLoader,
	categories CategoryLoader,
) *EventsRouter {
	return &EventsRouter{
		e:          e,
		indexer:    indexer,
		caches:     caches,
		posts:      posts,
		categories: categories,
	}
}

func (r *EventsRouter) Bind() {
	r.e.POST("/internal/events/posts/:id", r.postChangedHandler)
	r.e.DELETE("/internal/events/posts/:id", r.postDeletedHandler)
	r.e.POST("/internal/events/categories/:id", r.categoryChangedHandler)
	r.e.POST("/internal/events/tags/:id", r.tagChangedHandler)
}

// postChangedHandler reindexes the post in every locale and drops its cache
// entries. An inactive post is removed from the indexes instead.
func (r *EventsRouter) postChangedHandler(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := r.posts.LoadAggregate(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}

	if post.Active {
		if err := r.indexer.Index(ctx, post, indexing.PostEntityType); err != nil {
			return err
		}
	} else if err := r.indexer.Remove(ctx, indexing.PostEntityType, id); err != nil {
		return err
	}

	r.caches.InvalidatePost(ctx, post)
	return c.NoContent(http.StatusAccepted)
}

func (r *EventsRouter) postDeletedHandler(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := r.indexer.Remove(ctx, indexing.PostEntityType, id); err != nil {
		return err
	}

	// The row may already be gone; invalidate what can still be computed.
	post, err := r.posts.LoadAggregate(ctx, id)
	if err != nil {
		return err
	}
	if post != nil {
		r.caches.InvalidatePost(ctx, post)
	} else {
		r.caches.Posts.InvalidateListings(ctx)
	}
	return c.NoContent(http.StatusAccepted)
}

func (r *EventsRouter) categoryChangedHandler(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	category, err := r.categories.LoadAllTranslations(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		r.caches.Categories.InvalidateListings(ctx)
		return c.NoContent(http.StatusAccepted)
	}

	r.caches.InvalidateCategory(ctx, category)
	return c.NoContent(http.StatusAccepted)
}

func (r *EventsRouter) tagChangedHandler(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	r.caches.NotifyTagChanged(id)
	return c.NoContent(http.StatusAccepted)
}

func eventID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.NewValidation("id must be numeric")
	}
	return id, nil
}
