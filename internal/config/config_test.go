package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/storage/pg"
)

func TestLoader_Load(t *testing.T) {
	reader := strings.NewReader(`
locales:
  - fr
  - en
indexPrefix: "recipes_"
weights:
  title: 4.0
  excerpt: 2.0
  section: 1.0
  category: 0.5
`)
	loader := NewLoader(reader)

	settings, err := loader.Load(true)

	require.NoError(t, err)
	assert.Equal(t, []domain.Locale{"fr", "en"}, settings.Locales)
	assert.Equal(t, "recipes_", settings.IndexPrefix)
	assert.Equal(t, pg.Weights{Title: 4.0, Excerpt: 2.0, Section: 1.0, Category: 0.5},
		settings.RankingWeights())
}

func TestLoader_Load_DefaultsUnsetWeights(t *testing.T) {
	reader := strings.NewReader(`
locales: [fr]
weights:
  title: 8.0
`)
	settings, err := NewLoader(reader).Load(true)

	require.NoError(t, err)
	weights := settings.RankingWeights()
	assert.Equal(t, 8.0, weights.Title)
	assert.Equal(t, pg.DefaultWeights().Excerpt, weights.Excerpt)
	assert.Equal(t, pg.DefaultWeights().Section, weights.Section)
	assert.Equal(t, pg.DefaultWeights().Category, weights.Category)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no locales", `indexPrefix: "x_"`},
		{"empty locale", "locales: [fr, '']"},
		{"duplicate locale", "locales: [fr, fr]"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(strings.NewReader(tt.yaml)).Load(true)
			assert.Error(t, err)
		})
	}
}

func TestLoader_Load_SkipValidation(t *testing.T) {
	settings, err := NewLoader(strings.NewReader(`indexPrefix: "x_"`)).Load(false)

	require.NoError(t, err)
	assert.Empty(t, settings.Locales)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile("does/not/exist.yaml")
	assert.Error(t, err)
}
