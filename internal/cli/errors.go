package cli

import (
	"errors"
	"fmt"

	"github.com/jacksmith/storectl/internal/api"
	"github.com/jacksmith/storectl/internal/flow"
)

// NotFoundError indicates a store was not found.
type NotFoundError struct {
	Type string // "store"
	ID   string // the ID that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates a command-line validation failure.
type ValidationError struct {
	Field   string // the flag or argument that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ConflictError indicates the API rejected a duplicate store.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "a store with this name and address already exists"
	}
	return e.Message
}

// TranslateError maps API and flow failures for store id onto the CLI's
// error types. Other errors are returned unchanged.
func TranslateError(err error, id string) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	switch {
	case errors.Is(err, api.ErrNotFound):
		return &NotFoundError{Type: "store", ID: id}
	case errors.Is(err, api.ErrConflict):
		ce := &ConflictError{}
		if errors.As(err, &apiErr) {
			ce.Message = apiErr.Message
		}
		return ce
	case errors.Is(err, flow.ErrConfirmationMismatch):
		return &ValidationError{Field: "confirmation", Message: fmt.Sprintf("deletion cancelled, type %q to confirm", flow.DeleteToken)}
	case api.IsConnectionError(err):
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
	}
	return err
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
