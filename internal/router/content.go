package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tastavino/recipe-search/internal/apperr"
	"github.com/tastavino/recipe-search/internal/cache"
	"github.com/tastavino/recipe-search/internal/domain"
)

// ContentRouter serves post and category reads through the cache layer.
type ContentRouter struct {
	e       *echo.Echo
	caches  *cache.Registry
	locales []domain.Locale
}

func NewContentRouter(e *echo.Echo, caches *cache.Registry, locales []domain.Locale) *ContentRouter {
	return &ContentRouter{
		e:       e,
		caches:  caches,
		locales: locales,
	}
}

func (r *ContentRouter) Bind() {
	r.e.GET("/:locale/posts", r.listPostsHandler)
	r.e.GET("/:locale/posts/:identifier", r.getPostHandler)
	r.e.GET("/:locale/categories", r.listCategoriesHandler)
}

func (r *ContentRouter) listPostsHandler(c echo.Context) error {
	locale, err := r.locale(c)
	if err != nil {
		return err
	}

	posts, err := r.caches.Posts.List(c.Request().Context(), locale)
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

func (r *ContentRouter) getPostHandler(c echo.Context) error {
	locale, err := r.locale(c)
	if err != nil {
		return err
	}

	post, err := r.caches.Posts.GetOne(c.Request().Context(), locale, c.Param("identifier"))
	if err != nil {
		return err
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, post)
}

func (r *ContentRouter) listCategoriesHandler(c echo.Context) error {
	locale, err := r.locale(c)
	if err != nil {
		return err
	}

	categories, err := r.caches.Categories.List(c.Request().Context(), locale)
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

func (r *ContentRouter) locale(c echo.Context) (domain.Locale, error) {
	locale := domain.Locale(c.Param("locale"))
	if !locale.Supported(r.locales) {
		return "", apperr.NewValidation("unsupported locale: " + string(locale))
	}
	return locale, nil
}
