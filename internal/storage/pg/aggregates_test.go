package pg

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastavino/recipe-search/internal/domain"
)

func TestPostStore_LoadAggregate_GroupsSectionsAndTags(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "active", "image_path", "category_id"}).
			AddRow(int64(42), true, (*string)(nil), (*int64)(nil)))

	mock.ExpectQuery(`FROM post_translations`).
		WithArgs([]int64{42}).
		WillReturnRows(pgxmock.NewRows([]string{"post_id", "locale", "title", "slug", "excerpt"}).
			AddRow(int64(42), domain.Locale("fr"), "Fondant", "fondant-fr", "fr").
			AddRow(int64(42), domain.Locale("en"), "Fondant", "fondant-en", "en"))

	// Sections share a position, so translation rows of the two sections
	// interleave instead of arriving contiguously per section.
	mock.ExpectQuery(`FROM post_sections sec`).
		WithArgs([]int64{42}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "position", "locale", "title", "content"}).
			AddRow(int64(10), int64(42), 1, domain.Locale("fr"), "Préparation", "Faire fondre").
			AddRow(int64(11), int64(42), 1, domain.Locale("fr"), "Cuisson", "Enfourner").
			AddRow(int64(10), int64(42), 1, domain.Locale("en"), "Preparation", "Melt").
			AddRow(int64(11), int64(42), 1, domain.Locale("en"), "Baking", "Bake"))

	mock.ExpectQuery(`FROM post_tags ptg`).
		WithArgs([]int64{42}).
		WillReturnRows(pgxmock.NewRows([]string{"post_id", "tag_id", "locale", "title", "slug"}).
			AddRow(int64(42), int64(1), domain.Locale("fr"), "Chocolat", "chocolat").
			AddRow(int64(42), int64(2), domain.Locale("fr"), "Dessert", "dessert").
			AddRow(int64(42), int64(1), domain.Locale("en"), "Chocolate", "chocolate").
			AddRow(int64(42), int64(2), domain.Locale("en"), "Dessert", "dessert"))

	store := NewPostStore(mock)
	post, err := store.LoadAggregate(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Len(t, post.Translations, 2)

	require.Len(t, post.Sections, 2)
	for _, section := range post.Sections {
		assert.Len(t, section.Translations, 2, "section %d", section.ID)
	}
	frTr, ok := post.Sections[0].Translation("fr")
	require.True(t, ok)
	assert.Equal(t, "Préparation", frTr.Title)
	enTr, ok := post.Sections[1].Translation("en")
	require.True(t, ok)
	assert.Equal(t, "Baking", enTr.Title)

	require.Len(t, post.Tags, 2)
	for _, tag := range post.Tags {
		assert.Len(t, tag.Translations, 2, "tag %d", tag.ID)
	}
	tagTr, ok := post.Tags[0].Translation("en")
	require.True(t, ok)
	assert.Equal(t, "Chocolate", tagTr.Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStore_LoadAggregate_Missing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM posts WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "active", "image_path", "category_id"}))

	store := NewPostStore(mock)
	post, err := store.LoadAggregate(context.Background(), 7)

	require.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}
