package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a refdeck error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"  // 400
	ErrInvalidCategory ErrorCode = "INVALID_CATEGORY" // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"        // 404
	ErrInvalidCatalog  ErrorCode = "INVALID_CATALOG"  // 500
	ErrInternal        ErrorCode = "INTERNAL"         // 500
)

// DocsError represents a structured error with code, status, and details.
type DocsError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *DocsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *DocsError {
	return &DocsError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidCategory creates a 400 error for a category filter that is
// neither "all" nor a known category.
func NewInvalidCategory(value string, valid []string) *DocsError {
	return &DocsError{
		Code:    ErrInvalidCategory,
		Status:  400,
		Message: fmt.Sprintf("unknown category %q (valid: all, %v)", value, valid),
		Details: map[string]any{"category": value, "valid": valid},
	}
}

// NewNotFound creates a 404 error for an unknown tool or page.
func NewNotFound(kind, identifier string) *DocsError {
	return &DocsError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewInvalidCatalog creates a 500 error for catalog data that breaks the
// catalog invariants.
func NewInvalidCatalog(msg string) *DocsError {
	return &DocsError{
		Code:    ErrInvalidCatalog,
		Status:  500,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message stays generic; the cause is kept in Details for logging.
func NewInternal(err error) *DocsError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &DocsError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if err, or any error it wraps, is a DocsError with the given code.
func Is(err error, code ErrorCode) bool {
	var dErr *DocsError
	if stderrors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
