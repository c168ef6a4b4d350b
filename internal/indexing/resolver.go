package indexing

import (
	"strings"

	"github.com/tastavino/recipe-search/internal/domain"
)

// Resolver maps (entity type, locale) to an external index name. The
// prefix is environment-configured so staging, prod and test namespaces
// can share one search cluster. The format is part of the operational
// contract; tooling inspects indexes by this exact name.
type Resolver struct {
	prefix string
}

func NewResolver(prefix string) Resolver {
	return Resolver{prefix: prefix}
}

// Resolve returns "{prefix}{entityTypeLowercased}_{locale}", e.g. "posts_fr".
// Pure, no I/O, safe for concurrent use.
func (r Resolver) Resolve(entityType string, locale domain.Locale) string {
	return r.prefix + strings.ToLower(entityType) + "_" + string(locale)
}
