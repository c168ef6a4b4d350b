package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tastavino/recipe-search/internal/apperr"
	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/search"
)

const maxSearchLimit = 50

type SearchRouter struct {
	e       *echo.Echo
	facade  *search.Facade
	locales []domain.Locale
}

func NewSearchRouter(e *echo.Echo, facade *search.Facade, locales []domain.Locale) *SearchRouter {
	return &SearchRouter{
		e:       e,
		facade:  facade,
		locales: locales,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
}

type searchResponse struct {
	Query   string                      `json:"query"`
	Locale  domain.Locale               `json:"locale"`
	Results []domain.RankedSearchResult `json:"results"`
}

func (r *SearchRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")

	locale := domain.Locale(c.QueryParam("locale"))
	if locale == "" {
		return apperr.NewValidation("locale parameter is required")
	}
	if !locale.Supported(r.locales) {
		return apperr.NewValidation("unsupported locale: " + string(locale))
	}

	limit := search.DefaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.NewValidationWrap("invalid limit", err)
		}
		if parsed < 0 || parsed > maxSearchLimit {
			return apperr.NewValidation("limit out of range")
		}
		limit = parsed
	}

	results, err := r.facade.Search(c.Request().Context(), query, locale, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Locale:  locale,
		Results: results,
	})
}
