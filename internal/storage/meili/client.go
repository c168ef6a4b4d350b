package meili

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

const defaultTaskTimeout = 15 * time.Second

// store is the subset of the Meilisearch API the client drives. Every call
// covers the full enqueue-and-wait cycle and returns the finished task.
type store interface {
	addDocuments(ctx context.Context, index string, docs any, primaryKey string) (*meilisearch.Task, error)
	deleteDocument(ctx context.Context, index, id string) (*meilisearch.Task, error)
	deleteIndex(ctx context.Context, index string) (*meilisearch.Task, error)
}

// Client is a thin wrapper around the Meilisearch document API with one
// recovery policy: a primary-key mismatch deletes and recreates the target
// index, losing that index's existing documents, then retries the write
// once. Not safe under concurrent writers to the same index; index names
// are locale-scoped precisely so writers never share one.
type Client struct {
	store store
}

func NewClient(host, apiKey string) *Client {
	return &Client{
		store: &meiliStore{
			manager:     meilisearch.New(host, meilisearch.WithAPIKey(apiKey)),
			taskTimeout: defaultTaskTimeout,
		},
	}
}

// AddDocuments writes docs to the index, creating it on first write with
// the given primary-key field. On a primary-key mismatch the index is
// treated as corrupt: deleted, recreated by the retried write. Any other
// failure propagates unmodified.
func (c *Client) AddDocuments(ctx context.Context, index string, docs any, primaryKey string) error {
	err := taskResult(c.store.addDocuments(ctx, index, docs, primaryKey))
	if err == nil {
		return nil
	}
	if !IsPrimaryKeyMismatch(err) {
		return err
	}

	slog.Warn("primary key mismatch, recreating index",
		"index", index,
		"primaryKey", primaryKey,
		"error", err)

	if err := c.DeleteIndex(ctx, index); err != nil {
		return fmt.Errorf("failed to recreate index %s: %w", index, err)
	}
	return taskResult(c.store.addDocuments(ctx, index, docs, primaryKey))
}

// RemoveDocument deletes one document by id. A missing document or index
// counts as success; deletion is idempotent.
func (c *Client) RemoveDocument(ctx context.Context, index string, id int64) error {
	err := taskResult(c.store.deleteDocument(ctx, index, strconv.FormatInt(id, 10)))
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// DeleteIndex drops a whole index. A missing index counts as success.
func (c *Client) DeleteIndex(ctx context.Context, index string) error {
	err := taskResult(c.store.deleteIndex(ctx, index))
	if err != nil && !IsNotFound(err) {
		return err
	}
	return nil
}

// taskResult folds a finished task into an error: transport failures pass
// through, failed tasks become a TaskError, anything else is success.
func taskResult(task *meilisearch.Task, err error) error {
	if err != nil {
		return err
	}
	if task != nil && task.Status == meilisearch.TaskStatusFailed {
		return &TaskError{Code: task.Error.Code, Message: task.Error.Message}
	}
	return nil
}

// meiliStore adapts the real Meilisearch service manager: it enqueues each
// operation and waits for the resulting task to finish.
type meiliStore struct {
	manager     meilisearch.ServiceManager
	taskTimeout time.Duration
}

func (s *meiliStore) addDocuments(ctx context.Context, index string, docs any, primaryKey string) (*meilisearch.Task, error) {
	idx := s.manager.Index(index)
	info, err := idx.AddDocuments(docs, primaryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to add documents to %s: %w", index, err)
	}
	return s.wait(idx, info.TaskUID)
}

func (s *meiliStore) deleteDocument(ctx context.Context, index, id string) (*meilisearch.Task, error) {
	idx := s.manager.Index(index)
	info, err := idx.DeleteDocument(id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete document %s from %s: %w", id, index, err)
	}
	return s.wait(idx, info.TaskUID)
}

func (s *meiliStore) deleteIndex(ctx context.Context, index string) (*meilisearch.Task, error) {
	info, err := s.manager.DeleteIndex(index)
	if err != nil {
		return nil, fmt.Errorf("failed to delete index %s: %w", index, err)
	}
	return s.wait(s.manager.Index(index), info.TaskUID)
}

func (s *meiliStore) wait(idx meilisearch.IndexManager, taskUID int64) (*meilisearch.Task, error) {
	task, err := idx.WaitForTask(taskUID, s.taskTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for task %d: %w", taskUID, err)
	}
	return task, nil
}

var _ store = (*meiliStore)(nil)
