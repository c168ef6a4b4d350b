package search

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/pkg/utils"
)

const rankDecimalPlaces = 6

// AssembleResults converts raw ranked rows into the stable result type.
// Pure and side-effect free, one row in, one result out.
func AssembleResults(hits []RawHit) []domain.RankedSearchResult {
	results := make([]domain.RankedSearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, assembleHit(hit))
	}
	return results
}

func assembleHit(hit RawHit) domain.RankedSearchResult {
	return domain.RankedSearchResult{
		ID:            hit.ID,
		Title:         hit.Title,
		Slug:          hit.Slug,
		Excerpt:       hit.Excerpt,
		CategoryTitle: stringOrEmpty(hit.CategoryTitle),
		CategorySlug:  stringOrEmpty(hit.CategorySlug),
		ImagePath:     normalizeImagePath(hit.ImagePath),
		Rank:          utils.RoundDecimal(coerceRank(hit.Rank), rankDecimalPlaces),
	}
}

// coerceRank handles every shape the transport layer is known to deliver
// numeric columns in, including their textual form.
func coerceRank(v any) float64 {
	switch rank := v.(type) {
	case float64:
		return rank
	case float32:
		return float64(rank)
	case int64:
		return float64(rank)
	case string:
		parsed, err := strconv.ParseFloat(rank, 64)
		if err != nil {
			return 0
		}
		return parsed
	case []byte:
		parsed, err := strconv.ParseFloat(string(rank), 64)
		if err != nil {
			return 0
		}
		return parsed
	case pgtype.Numeric:
		f8, err := rank.Float64Value()
		if err != nil {
			return 0
		}
		return f8.Float64
	default:
		return 0
	}
}

// An empty image path means "no image"; callers get nil, never "".
func normalizeImagePath(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	return path
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
