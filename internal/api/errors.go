package api

import (
	"errors"
	"net/http"
)

// Sentinel errors matched by *APIError through errors.Is.
var (
	ErrNotFound = errors.New("store not found")
	ErrConflict = errors.New("store already exists")
)

// APIError represents an error response from the store API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is maps HTTP status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// IsConnectionError reports whether err is a transport failure rather than a
// server response.
func IsConnectionError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == "connection_error"
}
