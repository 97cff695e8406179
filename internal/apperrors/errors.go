package apperrors

import (
	"fmt"
)

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowActionNotFoundError is returned when an "Episodes" action is dispatched for a show
// that is not part of the rendered show list.
func NewShowActionNotFoundError(showID int) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show action",
		ID:       showID,
	}
}

// NetworkError is the single failure kind surfaced by the catalog client: the transport failed,
// the endpoint answered with a non-success status, or the body could not be decoded.
type NetworkError struct {
	Op         string // "search_shows" or "list_episodes"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s failed", e.Op, e.URL)
}

// Unwrap returns the underlying transport or decode error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// NewNetworkError creates a NetworkError for a failed transport or decode step.
func NewNetworkError(op, url string, err error) *NetworkError {
	return &NetworkError{Op: op, URL: url, Err: err}
}

// NewStatusError creates a NetworkError for a non-success HTTP status.
func NewStatusError(op, url string, statusCode int) *NetworkError {
	return &NetworkError{Op: op, URL: url, StatusCode: statusCode}
}
