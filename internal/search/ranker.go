package search

import (
	"context"

	"github.com/tastavino/recipe-search/internal/domain"
)

// RawHit is one candidate row as delivered by the relational ranking query.
// Rank stays untyped here: depending on the transport it may arrive as a
// float, a numeric or its textual form, and the assembler coerces it.
type RawHit struct {
	ID            int64
	Title         string
	Slug          string
	Excerpt       string
	CategoryTitle *string
	CategorySlug  *string
	ImagePath     *string
	Rank          any
}

// Ranker executes the weighted relevance query for one sanitized expression
// scoped to a single locale and returns at most limit rows ordered by rank
// descending, rank > 0 only.
type Ranker interface {
	Search(ctx context.Context, expression string, locale domain.Locale, limit int) ([]RawHit, error)
}
