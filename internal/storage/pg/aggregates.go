package pg

import (
	"context"
	"fmt"

	"github.com/tastavino/recipe-search/internal/domain"
)

// AllPosts loads every active post with its full aggregate: translations in
// all locales, sections, tags and category. This is the reindex feed; the
// request path never needs aggregates this wide.
func (s *PostStore) AllPosts(ctx context.Context) ([]domain.Post, error) {
	return s.loadAggregates(ctx, "active")
}

// LoadAggregate loads one post's full aggregate regardless of active flag,
// or nil when the post does not exist.
func (s *PostStore) LoadAggregate(ctx context.Context, id int64) (*domain.Post, error) {
	posts, err := s.loadAggregates(ctx, "id = $1", id)
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return &posts[0], nil
}

func (s *PostStore) loadAggregates(ctx context.Context, cond string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, active, image_path, category_id FROM posts WHERE `+cond+` ORDER BY id`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	var ids []int64
	categoryIDs := make(map[int64][]int64)
	for rows.Next() {
		var post domain.Post
		var categoryID *int64
		if err := rows.Scan(&post.ID, &post.Active, &post.ImagePath, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
		ids = append(ids, post.ID)
		if categoryID != nil {
			categoryIDs[*categoryID] = append(categoryIDs[*categoryID], post.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}

	byID := make(map[int64]*domain.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID] = &posts[i]
	}

	if err := s.attachTranslations(ctx, posts, ids); err != nil {
		return nil, err
	}
	if err := s.attachSections(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := s.attachTags(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, byID, categoryIDs); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *PostStore) attachSections(ctx context.Context, byID map[int64]*domain.Post, ids []int64) error {
	rows, err := s.db.Query(ctx,
		`SELECT sec.id, sec.post_id, sec.position, st.locale, st.title, st.content
		 FROM post_sections sec
		 JOIN post_section_translations st ON st.section_id = sec.id
		 WHERE sec.post_id = ANY($1)
		 ORDER BY sec.post_id, sec.position, sec.id`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	// Grouping is keyed by section id, not row adjacency: appending a later
	// section reallocates post.Sections, so re-resolve through the slice
	// index on every row.
	type sectionRef struct {
		post *domain.Post
		idx  int
	}
	refs := make(map[int64]sectionRef)
	for rows.Next() {
		var sectionID, postID int64
		var position int
		var tr domain.SectionTranslation
		if err := rows.Scan(&sectionID, &postID, &position, &tr.Locale, &tr.Title, &tr.Content); err != nil {
			return fmt.Errorf("failed to scan section row: %w", err)
		}

		ref, ok := refs[sectionID]
		if !ok {
			post, known := byID[postID]
			if !known {
				continue
			}
			post.Sections = append(post.Sections, domain.Section{ID: sectionID, Position: position})
			ref = sectionRef{post: post, idx: len(post.Sections) - 1}
			refs[sectionID] = ref
		}
		section := &ref.post.Sections[ref.idx]
		section.Translations = append(section.Translations, tr)
	}
	return rows.Err()
}

func (s *PostStore) attachTags(ctx context.Context, byID map[int64]*domain.Post, ids []int64) error {
	rows, err := s.db.Query(ctx,
		`SELECT ptg.post_id, tt.tag_id, tt.locale, tt.title, tt.slug
		 FROM post_tags ptg
		 JOIN tag_translations tt ON tt.tag_id = ptg.tag_id
		 WHERE ptg.post_id = ANY($1)
		 ORDER BY ptg.post_id, tt.tag_id`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	type tagKey struct{ postID, tagID int64 }
	type tagRef struct {
		post *domain.Post
		idx  int
	}
	refs := make(map[tagKey]tagRef)
	for rows.Next() {
		var postID, tagID int64
		var tr domain.TagTranslation
		if err := rows.Scan(&postID, &tagID, &tr.Locale, &tr.Title, &tr.Slug); err != nil {
			return fmt.Errorf("failed to scan tag row: %w", err)
		}

		key := tagKey{postID, tagID}
		ref, ok := refs[key]
		if !ok {
			post, known := byID[postID]
			if !known {
				continue
			}
			post.Tags = append(post.Tags, domain.Tag{ID: tagID})
			ref = tagRef{post: post, idx: len(post.Tags) - 1}
			refs[key] = ref
		}
		tag := &ref.post.Tags[ref.idx]
		tag.Translations = append(tag.Translations, tr)
	}
	return rows.Err()
}

func (s *PostStore) attachCategories(ctx context.Context, byID map[int64]*domain.Post, categoryIDs map[int64][]int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(categoryIDs))
	for id := range categoryIDs {
		ids = append(ids, id)
	}

	rows, err := s.db.Query(ctx,
		`SELECT category_id, locale, title, slug
		 FROM category_translations
		 WHERE category_id = ANY($1)`,
		ids)
	if err != nil {
		return fmt.Errorf("failed to query category translations: %w", err)
	}
	defer rows.Close()

	categories := make(map[int64]*domain.Category, len(ids))
	for rows.Next() {
		var categoryID int64
		var tr domain.CategoryTranslation
		if err := rows.Scan(&categoryID, &tr.Locale, &tr.Title, &tr.Slug); err != nil {
			return fmt.Errorf("failed to scan category translation: %w", err)
		}
		category, ok := categories[categoryID]
		if !ok {
			category = &domain.Category{ID: categoryID}
			categories[categoryID] = category
		}
		category.Translations = append(category.Translations, tr)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for categoryID, postIDs := range categoryIDs {
		category, ok := categories[categoryID]
		if !ok {
			category = &domain.Category{ID: categoryID}
		}
		for _, postID := range postIDs {
			if post, known := byID[postID]; known {
				post.Category = category
			}
		}
	}
	return nil
}
