package meili

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/meilisearch/meilisearch-go"
)

// TaskError reports an enqueued Meilisearch task that finished in the
// failed state. The transport call itself succeeded; the backend rejected
// the operation asynchronously.
type TaskError struct {
	Code    string
	Message string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("meilisearch task failed: %s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is the backend's 404 class: a missing
// index or document. Delete paths treat this as success.
func IsNotFound(err error) bool {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return strings.HasSuffix(taskErr.Code, "_not_found")
	}

	var apiErr *meilisearch.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsPrimaryKeyMismatch reports whether err is the backend's 400 class
// complaint about an index created with a different or absent primary key
// convention. This is the one error the indexer self-heals from.
func IsPrimaryKeyMismatch(err error) bool {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return strings.Contains(taskErr.Code, "primary_key") ||
			strings.Contains(strings.ToLower(taskErr.Message), "primary key")
	}

	var apiErr *meilisearch.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusBadRequest &&
			strings.Contains(strings.ToLower(apiErr.Error()), "primary key")
	}
	return false
}
