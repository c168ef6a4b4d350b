package meili

import (
	"context"
	"errors"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeCall struct {
	op    string
	index string
	docs  any
	id    string
}

// fakeStore scripts one response per call in order.
type fakeStore struct {
	calls     []storeCall
	responses []error
}

func (f *fakeStore) next() error {
	if len(f.responses) == 0 {
		return nil
	}
	err := f.responses[0]
	f.responses = f.responses[1:]
	return err
}

func (f *fakeStore) addDocuments(_ context.Context, index string, docs any, _ string) (*meilisearch.Task, error) {
	f.calls = append(f.calls, storeCall{op: "add", index: index, docs: docs})
	return nil, f.next()
}

func (f *fakeStore) deleteDocument(_ context.Context, index, id string) (*meilisearch.Task, error) {
	f.calls = append(f.calls, storeCall{op: "deleteDoc", index: index, id: id})
	return nil, f.next()
}

func (f *fakeStore) deleteIndex(_ context.Context, index string) (*meilisearch.Task, error) {
	f.calls = append(f.calls, storeCall{op: "deleteIndex", index: index})
	return nil, f.next()
}

func pkMismatchError() error {
	return &TaskError{
		Code:    "index_primary_key_already_exists",
		Message: "index has a different primary key",
	}
}

func ops(calls []storeCall) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.op
	}
	return out
}

func TestClient_AddDocuments_Success(t *testing.T) {
	store := &fakeStore{}
	c := &Client{store: store}

	docs := []map[string]any{{"id": 1}}
	err := c.AddDocuments(context.Background(), "posts_fr", docs, "id")

	require.NoError(t, err)
	assert.Equal(t, []string{"add"}, ops(store.calls))
}

func TestClient_AddDocuments_PrimaryKeyMismatchRecreatesIndex(t *testing.T) {
	store := &fakeStore{responses: []error{pkMismatchError(), nil, nil}}
	c := &Client{store: store}

	docs := []map[string]any{{"id": 1}}
	err := c.AddDocuments(context.Background(), "posts_fr", docs, "id")

	require.NoError(t, err)
	assert.Equal(t, []string{"add", "deleteIndex", "add"}, ops(store.calls))
	// The retry resubmits the same documents.
	assert.Equal(t, store.calls[0].docs, store.calls[2].docs)
	assert.Equal(t, "posts_fr", store.calls[1].index)
}

func TestClient_AddDocuments_RetryFailurePropagates(t *testing.T) {
	retryErr := &TaskError{Code: "invalid_document_fields", Message: "bad document"}
	store := &fakeStore{responses: []error{pkMismatchError(), nil, retryErr}}
	c := &Client{store: store}

	err := c.AddDocuments(context.Background(), "posts_fr", nil, "id")

	require.Error(t, err)
	assert.ErrorIs(t, err, retryErr)
	assert.Equal(t, []string{"add", "deleteIndex", "add"}, ops(store.calls))
}

func TestClient_AddDocuments_OtherErrorsDoNotRetry(t *testing.T) {
	cause := &TaskError{Code: "invalid_api_key", Message: "forbidden"}
	store := &fakeStore{responses: []error{cause}}
	c := &Client{store: store}

	err := c.AddDocuments(context.Background(), "posts_fr", nil, "id")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"add"}, ops(store.calls))
}

func TestClient_RemoveDocument_Idempotent(t *testing.T) {
	store := &fakeStore{responses: []error{
		&TaskError{Code: "document_not_found", Message: "no such document"},
	}}
	c := &Client{store: store}

	err := c.RemoveDocument(context.Background(), "posts_fr", 42)

	require.NoError(t, err)
	require.Len(t, store.calls, 1)
	assert.Equal(t, "42", store.calls[0].id)
}

func TestClient_RemoveDocument_OtherErrorPropagates(t *testing.T) {
	cause := errors.New("connection refused")
	store := &fakeStore{responses: []error{cause}}
	c := &Client{store: store}

	err := c.RemoveDocument(context.Background(), "posts_fr", 42)
	assert.ErrorIs(t, err, cause)
}

func TestClient_DeleteIndex_MissingIndexIsSuccess(t *testing.T) {
	store := &fakeStore{responses: []error{
		&TaskError{Code: "index_not_found", Message: "no such index"},
	}}
	c := &Client{store: store}

	assert.NoError(t, c.DeleteIndex(context.Background(), "posts_fr"))
}

func TestTaskResult_FoldsFailedTask(t *testing.T) {
	task := &meilisearch.Task{Status: meilisearch.TaskStatusFailed}
	task.Error.Code = "index_primary_key_already_exists"
	task.Error.Message = "index has a different primary key"

	err := taskResult(task, nil)
	require.Error(t, err)
	assert.True(t, IsPrimaryKeyMismatch(err))

	assert.NoError(t, taskResult(&meilisearch.Task{Status: meilisearch.TaskStatusSucceeded}, nil))
	assert.NoError(t, taskResult(nil, nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&TaskError{Code: "index_not_found"}))
	assert.True(t, IsNotFound(&TaskError{Code: "document_not_found"}))
	assert.False(t, IsNotFound(&TaskError{Code: "invalid_api_key"}))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestIsPrimaryKeyMismatch(t *testing.T) {
	assert.True(t, IsPrimaryKeyMismatch(&TaskError{Code: "index_primary_key_already_exists"}))
	assert.True(t, IsPrimaryKeyMismatch(&TaskError{Code: "invalid_request", Message: "Primary key mismatch"}))
	assert.False(t, IsPrimaryKeyMismatch(&TaskError{Code: "index_not_found"}))
	assert.False(t, IsPrimaryKeyMismatch(errors.New("boom")))
}
