package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tastavino/recipe-search/internal/domain"
)

// CategoryStore loads categories for the read-through cache.
type CategoryStore struct {
	db Querier
}

func NewCategoryStore(db Querier) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryDetailSQL = `
SELECT c.id, ct.title, ct.slug
FROM categories c
JOIN category_translations ct ON ct.category_id = c.id AND ct.locale = $1
WHERE %s
`

// LoadByID returns the category with its translation for one locale, or nil
// when it does not exist or lacks that translation.
func (s *CategoryStore) LoadByID(ctx context.Context, locale domain.Locale, id int64) (*domain.Category, error) {
	return s.loadOne(ctx, fmt.Sprintf(categoryDetailSQL, "c.id = $2"), locale, id)
}

// LoadBySlug is LoadByID keyed by the locale-scoped slug.
func (s *CategoryStore) LoadBySlug(ctx context.Context, locale domain.Locale, slug string) (*domain.Category, error) {
	return s.loadOne(ctx, fmt.Sprintf(categoryDetailSQL, "ct.slug = $2"), locale, slug)
}

func (s *CategoryStore) loadOne(ctx context.Context, sql string, locale domain.Locale, arg any) (*domain.Category, error) {
	row := s.db.QueryRow(ctx, sql, string(locale), arg)

	category, err := scanCategory(row, locale)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return category, nil
}

// ListAll returns every category carrying a translation for the locale,
// ordered by title.
func (s *CategoryStore) ListAll(ctx context.Context, locale domain.Locale) ([]domain.Category, error) {
	sql := fmt.Sprintf(categoryDetailSQL, "TRUE") + " ORDER BY ct.title"

	rows, err := s.db.Query(ctx, sql, string(locale))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows, locale)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

// LoadAllTranslations returns the category with its translations in every
// locale, or nil when it does not exist. Cache invalidation needs all
// locales' slugs, not one request's view.
func (s *CategoryStore) LoadAllTranslations(ctx context.Context, id int64) (*domain.Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT locale, title, slug FROM category_translations WHERE category_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category translations: %w", err)
	}
	defer rows.Close()

	category := domain.Category{ID: id}
	for rows.Next() {
		var tr domain.CategoryTranslation
		if err := rows.Scan(&tr.Locale, &tr.Title, &tr.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category translation: %w", err)
		}
		category.Translations = append(category.Translations, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(category.Translations) == 0 {
		return nil, nil
	}
	return &category, nil
}

func scanCategory(row postRow, locale domain.Locale) (*domain.Category, error) {
	var category domain.Category
	var tr domain.CategoryTranslation

	if err := row.Scan(&category.ID, &tr.Title, &tr.Slug); err != nil {
		return nil, err
	}

	tr.Locale = locale
	category.Translations = []domain.CategoryTranslation{tr}
	return &category, nil
}
