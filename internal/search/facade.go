package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tastavino/recipe-search/internal/domain"
)

// DefaultLimit is the number of results returned when the caller does not
// ask for a specific page size.
const DefaultLimit = 5

// Facade orchestrates sanitize, rank and assemble. It is the only search
// entry point other subsystems call.
type Facade struct {
	ranker Ranker
}

func NewFacade(ranker Ranker) *Facade {
	return &Facade{ranker: ranker}
}

// Search runs a locale-scoped relevance search for raw user input.
// An input that sanitizes down to nothing short-circuits to an empty result
// without touching the engine, as does a non-positive limit.
func (f *Facade) Search(ctx context.Context, rawQuery string, locale domain.Locale, limit int) ([]domain.RankedSearchResult, error) {
	if limit <= 0 {
		return []domain.RankedSearchResult{}, nil
	}

	expression := ToSearchExpression(rawQuery)
	if expression == "" {
		slog.Debug("query sanitized to nothing, skipping search", "raw", rawQuery, "locale", locale)
		return []domain.RankedSearchResult{}, nil
	}

	hits, err := f.ranker.Search(ctx, expression, locale, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking query failed: %w", err)
	}

	return AssembleResults(hits), nil
}
