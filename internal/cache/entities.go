package cache

import (
	"time"

	"github.com/tastavino/recipe-search/internal/domain"
)

// DefaultTTL bounds staleness for entries that escape invalidation.
const DefaultTTL = time.Hour

// NewPostCache builds the read-through cache over posts.
func NewPostCache(store Store, source Source[domain.Post], locales []domain.Locale) *Cache[domain.Post] {
	return &Cache[domain.Post]{
		entity:  "post",
		store:   store,
		source:  source,
		locales: locales,
		ttl:     DefaultTTL,
		id:      func(p *domain.Post) int64 { return p.ID },
		slugFor: func(p *domain.Post, locale domain.Locale) (string, bool) { return p.Slug(locale) },
	}
}

// NewCategoryCache builds the read-through cache over categories.
func NewCategoryCache(store Store, source Source[domain.Category], locales []domain.Locale) *Cache[domain.Category] {
	return &Cache[domain.Category]{
		entity:  "category",
		store:   store,
		source:  source,
		locales: locales,
		ttl:     DefaultTTL,
		id:      func(c *domain.Category) int64 { return c.ID },
		slugFor: func(c *domain.Category, locale domain.Locale) (string, bool) { return c.Slug(locale) },
	}
}
