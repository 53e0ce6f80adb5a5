package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Clone returns a copy with an overridden message, keeping code and status.
func (e *Error) Clone(message string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails returns a copy carrying extra response details.
func (e *Error) WithDetails(details map[string]string) *Error {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Details = details
	return &clone
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap marks an infrastructure failure, typically a failed database
// operation, preserving the underlying error for logs.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrPersistence.Code,
		Status:  ErrPersistence.Status,
		Message: message,
		Err:     err,
	}
}

// Predefined errors for common scenarios.
var (
	ErrValidation     = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrUnauthorized   = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrNotFound       = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDuplicateEmail = New("DUPLICATE_EMAIL", http.StatusBadRequest, "Email already exists")
	ErrPersistence    = New("PERSISTENCE_ERROR", http.StatusServiceUnavailable, "unable to complete database operation")
	ErrConfiguration  = New("CONFIGURATION_ERROR", http.StatusInternalServerError, "server configuration error")
	ErrInternal       = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrForbidden      = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrCacheMiss      = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    ErrInternal.Code,
		Status:  ErrInternal.Status,
		Message: ErrInternal.Message,
		Err:     err,
	}
}

// Is reports whether err carries the same code as target. Clones and
// detail-augmented copies still match their sentinel.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == target.Code
}
