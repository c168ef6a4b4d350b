package indexing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tastavino/recipe-search/internal/domain"
)

// PostEntityType is the one searchable entity type this backend indexes.
const PostEntityType = "posts"

// DocumentStore is the document-store surface the indexer writes through.
// Implemented by the Meilisearch client.
type DocumentStore interface {
	AddDocuments(ctx context.Context, index string, docs any, primaryKey string) error
	RemoveDocument(ctx context.Context, index string, id int64) error
}

// EntityIndexer keeps the per-locale document indexes synchronized with the
// canonical data. Locales are processed independently: one locale failing
// never stops the others, and the per-locale retry stays atomic because
// index names are locale-scoped.
type EntityIndexer struct {
	store     DocumentStore
	resolver  Resolver
	locales   []domain.Locale
	normalize func(*domain.Post, domain.Locale) (Document, bool)
}

func NewEntityIndexer(store DocumentStore, resolver Resolver, locales []domain.Locale) *EntityIndexer {
	return &EntityIndexer{
		store:     store,
		resolver:  resolver,
		locales:   locales,
		normalize: BuildDocument,
	}
}

// Index writes one locale-scoped document per supported locale the post is
// translated in. Untranslated locales are skipped with a log line, never an
// error. Per-locale failures are collected and joined after every locale
// has been attempted.
func (ix *EntityIndexer) Index(ctx context.Context, post *domain.Post, entityType string) error {
	var errs []error
	for _, locale := range ix.locales {
		doc, ok := ix.normalize(post, locale)
		if !ok {
			slog.Info("skipping locale without translation",
				"entity", entityType, "id", post.ID, "locale", locale)
			continue
		}

		index := ix.resolver.Resolve(entityType, locale)
		if err := ix.store.AddDocuments(ctx, index, []Document{doc}, PrimaryKeyField); err != nil {
			slog.Error("failed to index document",
				"index", index, "id", post.ID, "error", err)
			errs = append(errs, fmt.Errorf("index %s: %w", index, err))
		}
	}
	return errors.Join(errs...)
}

// Remove deletes the entity's document from every locale's index,
// unconditionally: a locale the entity was never indexed in succeeds too.
func (ix *EntityIndexer) Remove(ctx context.Context, entityType string, id int64) error {
	var errs []error
	for _, locale := range ix.locales {
		index := ix.resolver.Resolve(entityType, locale)
		if err := ix.store.RemoveDocument(ctx, index, id); err != nil {
			slog.Error("failed to remove document",
				"index", index, "id", id, "error", err)
			errs = append(errs, fmt.Errorf("index %s: %w", index, err))
		}
	}
	return errors.Join(errs...)
}
