package indexing

import (
	"strings"

	"github.com/tastavino/recipe-search/internal/domain"
)

// Document is the locale-scoped denormalization of a post shipped to the
// document store. ID is the post's canonical identity, stable across
// locales, and doubles as the index's primary-key field.
type Document struct {
	ID            int64    `json:"id"`
	Locale        string   `json:"locale"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	CategoryTitle string   `json:"categoryTitle"`
	Tags          []string `json:"tags"`
}

// PrimaryKeyField is the document-store primary key every post index is
// created with.
const PrimaryKeyField = "id"

// BuildDocument flattens a post into its document for one locale. The
// second return value is false when the post has no translation for that
// locale; no document exists for a locale without a translation.
func BuildDocument(post *domain.Post, locale domain.Locale) (Document, bool) {
	tr, ok := post.Translation(locale)
	if !ok || strings.TrimSpace(tr.Title) == "" {
		return Document{}, false
	}

	doc := Document{
		ID:      post.ID,
		Locale:  string(locale),
		Title:   tr.Title,
		Excerpt: tr.Excerpt,
		Tags:    []string{},
	}

	if post.Category != nil {
		if ctr, ok := post.Category.Translation(locale); ok {
			doc.CategoryTitle = ctr.Title
		}
	}

	for i := range post.Tags {
		if ttr, ok := post.Tags[i].Translation(locale); ok && ttr.Title != "" {
			doc.Tags = append(doc.Tags, ttr.Title)
		}
	}

	return doc, true
}
