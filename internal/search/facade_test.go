package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastavino/recipe-search/internal/domain"
)

type fakeRanker struct {
	hits []RawHit
	err  error

	calls      int
	expression string
	locale     domain.Locale
	limit      int
}

func (f *fakeRanker) Search(_ context.Context, expression string, locale domain.Locale, limit int) ([]RawHit, error) {
	f.calls++
	f.expression = expression
	f.locale = locale
	f.limit = limit
	return f.hits, f.err
}

func TestFacade_Search_DelegatesSanitizedExpression(t *testing.T) {
	ranker := &fakeRanker{hits: []RawHit{{ID: 1, Title: "Brownie", Rank: float64(2.0)}}}
	facade := NewFacade(ranker)

	results, err := facade.Search(context.Background(), "Choco & Brownie!", "fr", 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Brownie", results[0].Title)
	assert.Equal(t, 1, ranker.calls)
	assert.Equal(t, "choco:* & brownie:*", ranker.expression)
	assert.Equal(t, domain.Locale("fr"), ranker.locale)
	assert.Equal(t, 10, ranker.limit)
}

func TestFacade_Search_EmptyExpressionSkipsRanker(t *testing.T) {
	ranker := &fakeRanker{}
	facade := NewFacade(ranker)

	for _, raw := range []string{"", "   ", "&&|!()"} {
		results, err := facade.Search(context.Background(), raw, "en", DefaultLimit)
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.NotNil(t, results)
	}
	assert.Zero(t, ranker.calls)
}

func TestFacade_Search_NonPositiveLimit(t *testing.T) {
	ranker := &fakeRanker{}
	facade := NewFacade(ranker)

	for _, limit := range []int{0, -1} {
		results, err := facade.Search(context.Background(), "cake", "en", limit)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Zero(t, ranker.calls)
}

func TestFacade_Search_WrapsRankerError(t *testing.T) {
	cause := errors.New("connection refused")
	facade := NewFacade(&fakeRanker{err: cause})

	results, err := facade.Search(context.Background(), "cake", "en", 5)

	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ranking query failed")
}
