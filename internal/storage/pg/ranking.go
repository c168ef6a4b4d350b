package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/search"
)

// Weights are the tunable constants of the ranking formula. Category and
// tags deliberately share the lowest tier, and tag scores add up without a
// cap: a post matching many tags can outscore a pure title match.
type Weights struct {
	Title    float64
	Excerpt  float64
	Section  float64
	Category float64
}

func DefaultWeights() Weights {
	return Weights{
		Title:    4.0,
		Excerpt:  2.0,
		Section:  1.0,
		Category: 0.5,
	}
}

// rankingSQL aggregates a weighted ts_rank score per active post from four
// independently weighted sources: the post translation's title and excerpt,
// the sum over its section translations, and the category title plus the
// sum over its tag translations.
//
// Every scored column is coalesced to '' first: a missing translation,
// section or tag must contribute zero, not NULL out the whole sum.
//
// The WHERE clause re-tests the same five sources with the @@ match
// predicate instead of relying on rank > 0, so membership and weighting are
// computed in tandem. All translation joins are pinned to the requested
// locale; the category join is left-outer because a category is optional.
//
// Weight placeholders are substituted once at construction; only the
// expression, locale and limit travel as bind parameters.
const rankingSQL = `
WITH query AS (
	SELECT to_tsquery('simple', $1) AS ts
)
SELECT
	p.id,
	pt.title,
	pt.slug,
	pt.excerpt,
	ct.title AS category_title,
	ct.slug AS category_slug,
	p.image_path,
	(
		%[1]s * ts_rank(to_tsvector('simple', COALESCE(pt.title, '')), query.ts)
		+ %[2]s * ts_rank(to_tsvector('simple', COALESCE(pt.excerpt, '')), query.ts)
		+ %[3]s * (
			SELECT COALESCE(SUM(ts_rank(to_tsvector('simple', COALESCE(st.title, '') || ' ' || COALESCE(st.content, '')), query.ts)), 0)
			FROM post_sections s
			JOIN post_section_translations st ON st.section_id = s.id AND st.locale = $2
			WHERE s.post_id = p.id
		)
		+ %[4]s * ts_rank(to_tsvector('simple', COALESCE(ct.title, '')), query.ts)
		+ %[4]s * (
			SELECT COALESCE(SUM(ts_rank(to_tsvector('simple', COALESCE(tt.title, '')), query.ts)), 0)
			FROM post_tags ptg
			JOIN tag_translations tt ON tt.tag_id = ptg.tag_id AND tt.locale = $2
			WHERE ptg.post_id = p.id
		)
	) AS rank
FROM posts p
CROSS JOIN query
JOIN post_translations pt ON pt.post_id = p.id AND pt.locale = $2
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.locale = $2
WHERE p.active
  AND (
	to_tsvector('simple', COALESCE(pt.title, '')) @@ query.ts
	OR to_tsvector('simple', COALESCE(pt.excerpt, '')) @@ query.ts
	OR EXISTS (
		SELECT 1
		FROM post_sections s
		JOIN post_section_translations st ON st.section_id = s.id AND st.locale = $2
		WHERE s.post_id = p.id
		  AND to_tsvector('simple', COALESCE(st.title, '') || ' ' || COALESCE(st.content, '')) @@ query.ts
	)
	OR to_tsvector('simple', COALESCE(ct.title, '')) @@ query.ts
	OR EXISTS (
		SELECT 1
		FROM post_tags ptg
		JOIN tag_translations tt ON tt.tag_id = ptg.tag_id AND tt.locale = $2
		WHERE ptg.post_id = p.id
		  AND to_tsvector('simple', COALESCE(tt.title, '')) @@ query.ts
	)
  )
ORDER BY rank DESC
LIMIT $3
`

// RankingQuery executes the weighted relevance query against PostgreSQL.
type RankingQuery struct {
	db  Querier
	sql string
}

func NewRankingQuery(db Querier, weights Weights) *RankingQuery {
	return &RankingQuery{
		db: db,
		sql: fmt.Sprintf(rankingSQL,
			formatWeight(weights.Title),
			formatWeight(weights.Excerpt),
			formatWeight(weights.Section),
			formatWeight(weights.Category),
		),
	}
}

// Search implements search.Ranker. Rows come back ordered by rank
// descending; ties fall to the engine's natural ordering, no secondary
// ordering is guaranteed.
func (q *RankingQuery) Search(ctx context.Context, expression string, locale domain.Locale, limit int) ([]search.RawHit, error) {
	if expression == "" || limit <= 0 {
		return nil, nil
	}

	slog.Debug("executing ranking query", "expression", expression, "locale", locale, "limit", limit)

	rows, err := q.db.Query(ctx, q.sql, expression, string(locale), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ranking query: %w", err)
	}
	defer rows.Close()

	var hits []search.RawHit
	for rows.Next() {
		var hit search.RawHit
		if err := rows.Scan(
			&hit.ID,
			&hit.Title,
			&hit.Slug,
			&hit.Excerpt,
			&hit.CategoryTitle,
			&hit.CategorySlug,
			&hit.ImagePath,
			&hit.Rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ranked row: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranked rows: %w", err)
	}

	slog.Debug("ranking query results fetched", "hits", len(hits), "locale", locale)
	return hits, nil
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Compile-time interface assertion
var _ search.Ranker = (*RankingQuery)(nil)
