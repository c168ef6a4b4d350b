package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastavino/recipe-search/internal/apperr"
	"github.com/tastavino/recipe-search/internal/cache"
	"github.com/tastavino/recipe-search/internal/domain"
	"github.com/tastavino/recipe-search/internal/indexing"
)

type recordingDocStore struct {
	mu      sync.Mutex
	adds    []string
	removes []string
}

func (s *recordingDocStore) AddDocuments(_ context.Context, index string, _ any, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adds = append(s.adds, index)
	return nil
}

func (s *recordingDocStore) RemoveDocument(_ context.Context, index string, _ int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes = append(s.removes, index)
	return nil
}

type stubPostLoader struct {
	post *domain.Post
}

func (s *stubPostLoader) LoadAggregate(context.Context, int64) (*domain.Post, error) {
	return s.post, nil
}

type stubCategoryLoader struct {
	category *domain.Category
}

func (s *stubCategoryLoader) LoadAllTranslations(context.Context, int64) (*domain.Category, error) {
	return s.category, nil
}

type nopStore struct{}

func (nopStore) Get(context.Context, string) (string, error) { return "", cache.ErrCacheMiss }
func (nopStore) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (nopStore) Del(context.Context, ...string) error { return nil }

type nilPostSource struct{}

func (nilPostSource) LoadByID(context.Context, domain.Locale, int64) (*domain.Post, error) {
	return nil, nil
}
func (nilPostSource) LoadBySlug(context.Context, domain.Locale, string) (*domain.Post, error) {
	return nil, nil
}
func (nilPostSource) ListAll(context.Context, domain.Locale) ([]domain.Post, error) {
	return nil, nil
}

type nilCategorySource struct{}

func (nilCategorySource) LoadByID(context.Context, domain.Locale, int64) (*domain.Category, error) {
	return nil, nil
}
func (nilCategorySource) LoadBySlug(context.Context, domain.Locale, string) (*domain.Category, error) {
	return nil, nil
}
func (nilCategorySource) ListAll(context.Context, domain.Locale) ([]domain.Category, error) {
	return nil, nil
}

func newEventsTestServer(t *testing.T, docStore indexing.DocumentStore, posts PostLoader, categories CategoryLoader) *echo.Echo {
	t.Helper()

	locales := []domain.Locale{"fr", "en"}
	registry := cache.NewRegistry(
		cache.NewPostCache(nopStore{}, nilPostSource{}, locales),
		cache.NewCategoryCache(nopStore{}, nilCategorySource{}, locales),
		func(context.Context, int64) ([]domain.Post, error) { return nil, nil },
		func(context.Context, int64) ([]domain.Post, error) { return nil, nil },
	)
	indexer := indexing.NewEntityIndexer(docStore, indexing.NewResolver(""), locales)

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewEventsRouter(e, indexer, registry, posts, categories).Bind()
	return e
}

func doEvent(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEventsRouter_PostChanged_ReindexesActivePost(t *testing.T) {
	docStore := &recordingDocStore{}
	post := &domain.Post{
		ID:     42,
		Active: true,
		Translations: []domain.PostTranslation{
			{Locale: "fr", Title: "Fondant", Slug: "fondant"},
		},
	}

	e := newEventsTestServer(t, docStore, &stubPostLoader{post: post}, &stubCategoryLoader{})
	rec := doEvent(e, http.MethodPost, "/internal/events/posts/42")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"posts_fr"}, docStore.adds)
	assert.Empty(t, docStore.removes)
}

func TestEventsRouter_PostChanged_InactivePostIsRemoved(t *testing.T) {
	docStore := &recordingDocStore{}
	post := &domain.Post{ID: 42, Active: false}

	e := newEventsTestServer(t, docStore, &stubPostLoader{post: post}, &stubCategoryLoader{})
	rec := doEvent(e, http.MethodPost, "/internal/events/posts/42")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, docStore.adds)
	assert.Equal(t, []string{"posts_fr", "posts_en"}, docStore.removes)
}

func TestEventsRouter_PostChanged_UnknownPost(t *testing.T) {
	e := newEventsTestServer(t, &recordingDocStore{}, &stubPostLoader{}, &stubCategoryLoader{})
	rec := doEvent(e, http.MethodPost, "/internal/events/posts/42")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventsRouter_PostDeleted_RemovesFromAllLocales(t *testing.T) {
	docStore := &recordingDocStore{}
	e := newEventsTestServer(t, docStore, &stubPostLoader{}, &stubCategoryLoader{})

	rec := doEvent(e, http.MethodDelete, "/internal/events/posts/42")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"posts_fr", "posts_en"}, docStore.removes)
}

func TestEventsRouter_NonNumericID(t *testing.T) {
	e := newEventsTestServer(t, &recordingDocStore{}, &stubPostLoader{}, &stubCategoryLoader{})

	rec := doEvent(e, http.MethodPost, "/internal/events/posts/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doEvent(e, http.MethodPost, "/internal/events/tags/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsRouter_CategoryChanged(t *testing.T) {
	category := &domain.Category{ID: 3, Translations: []domain.CategoryTranslation{
		{Locale: "fr", Title: "Desserts", Slug: "desserts"},
	}}
	e := newEventsTestServer(t, &recordingDocStore{}, &stubPostLoader{}, &stubCategoryLoader{category: category})

	rec := doEvent(e, http.MethodPost, "/internal/events/categories/3")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestEventsRouter_TagChanged(t *testing.T) {
	e := newEventsTestServer(t, &recordingDocStore{}, &stubPostLoader{}, &stubCategoryLoader{})

	rec := doEvent(e, http.MethodPost, "/internal/events/tags/7")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
