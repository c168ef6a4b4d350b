package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tastavino/recipe-search/internal/domain"
)

// PostStore loads post aggregates from the canonical store. It backs the
// read-through cache, the invalidation cascade and the reindex command;
// writes happen elsewhere.
type PostStore struct {
	db Querier
}

func NewPostStore(db Querier) *PostStore {
	return &PostStore{db: db}
}

const postDetailSQL = `
SELECT p.id, p.active, p.image_path, pt.title, pt.slug, pt.excerpt,
       c.id, ct.title, ct.slug
FROM posts p
JOIN post_translations pt ON pt.post_id = p.id AND pt.locale = $1
LEFT JOIN categories c ON c.id = p.category_id
LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.locale = $1
WHERE p.active AND %s
`

// LoadByID returns the post with its translation for one locale, or nil
// when the post does not exist, is inactive or lacks that translation.
func (s *PostStore) LoadByID(ctx context.Context, locale domain.Locale, id int64) (*domain.Post, error) {
	return s.loadOne(ctx, fmt.Sprintf(postDetailSQL, "p.id = $2"), locale, id)
}

// LoadBySlug is LoadByID keyed by the locale-scoped slug.
func (s *PostStore) LoadBySlug(ctx context.Context, locale domain.Locale, slug string) (*domain.Post, error) {
	return s.loadOne(ctx, fmt.Sprintf(postDetailSQL, "pt.slug = $2"), locale, slug)
}

func (s *PostStore) loadOne(ctx context.Context, sql string, locale domain.Locale, arg any) (*domain.Post, error) {
	row := s.db.QueryRow(ctx, sql, string(locale), arg)

	post, err := scanPostDetail(row, locale)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	return post, nil
}

// ListAll returns every active post carrying a translation for the locale,
// ordered by title.
func (s *PostStore) ListAll(ctx context.Context, locale domain.Locale) ([]domain.Post, error) {
	sql := fmt.Sprintf(postDetailSQL, "TRUE") + " ORDER BY pt.title"

	rows, err := s.db.Query(ctx, sql, string(locale))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPostDetail(rows, locale)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post listing row: %w", err)
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

// PostsByCategory returns the posts under one category with every locale's
// translation attached, so each post's cache keys can be recomputed.
func (s *PostStore) PostsByCategory(ctx context.Context, categoryID int64) ([]domain.Post, error) {
	return s.postsWhere(ctx,
		`SELECT id, active, image_path FROM posts WHERE active AND category_id = $1`,
		categoryID)
}

// PostsByTag returns the posts referencing one tag with every locale's
// translation attached. The tag write path defers this query to the relay
// listener; tags cannot enumerate their posts on their own.
func (s *PostStore) PostsByTag(ctx context.Context, tagID int64) ([]domain.Post, error) {
	return s.postsWhere(ctx,
		`SELECT p.id, p.active, p.image_path
		 FROM posts p
		 JOIN post_tags ptg ON ptg.post_id = p.id
		 WHERE p.active AND ptg.tag_id = $1`,
		tagID)
}

func (s *PostStore) postsWhere(ctx context.Context, sql string, arg any) ([]domain.Post, error) {
	rows, err := s.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	var ids []int64
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.ID, &post.Active, &post.ImagePath); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
		ids = append(ids, post.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}

	if err := s.attachTranslations(ctx, posts, ids); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) attachTranslations(ctx context.Context, posts []domain.Post, ids []int64) error {
	rows, err := s.db.Query(ctx,
		`SELECT post_id, locale, title, slug, excerpt
		 FROM post_translations
		 WHERE post_id = ANY($1)`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to query post translations: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*domain.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}

	for rows.Next() {
		var postID int64
		var tr domain.PostTranslation
		if err := rows.Scan(&postID, &tr.Locale, &tr.Title, &tr.Slug, &tr.Excerpt); err != nil {
			return fmt.Errorf("failed to scan post translation: %w", err)
		}
		if post, ok := byID[postID]; ok {
			post.Translations = append(post.Translations, tr)
		}
	}
	return rows.Err()
}

type postRow interface {
	Scan(dest ...any) error
}

func scanPostDetail(row postRow, locale domain.Locale) (*domain.Post, error) {
	var post domain.Post
	var tr domain.PostTranslation
	var categoryID *int64
	var categoryTitle, categorySlug *string

	if err := row.Scan(
		&post.ID,
		&post.Active,
		&post.ImagePath,
		&tr.Title,
		&tr.Slug,
		&tr.Excerpt,
		&categoryID,
		&categoryTitle,
		&categorySlug,
	); err != nil {
		return nil, err
	}

	tr.Locale = locale
	post.Translations = []domain.PostTranslation{tr}

	if categoryID != nil {
		category := &domain.Category{ID: *categoryID}
		if categoryTitle != nil || categorySlug != nil {
			category.Translations = []domain.CategoryTranslation{{
				Locale: locale,
				Title:  derefString(categoryTitle),
				Slug:   derefString(categorySlug),
			}}
		}
		post.Category = category
	}

	return &post, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
