// Package apperror defines the error taxonomy shared by every layer.
//
// Services and repositories return these errors; only the HTTP handler
// package knows how each kind maps to a status code.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTooLarge        = errors.New("request too large")
)

type AppError struct {
	Err      error    // sentinel kind, one of the Err* values above
	Message  string   // Human-readable error message
	Messages []string // Per-field messages for validation errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

// ValidationFailed bundles one or more field messages into a single error.
// The first message doubles as the summary returned by Error().
func ValidationFailed(messages ...string) *AppError {
	summary := "validation failed"
	if len(messages) > 0 {
		summary = messages[0]
	}
	return &AppError{
		Err:      ErrValidation,
		Message:  summary,
		Messages: messages,
	}
}

func Conflict(resource string, key any) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict on %v", resource, key),
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthenticated is used when credentials are missing or wrong. The message
// is shown to the client, so it must never say which check failed.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

func TooLarge(message string) *AppError {
	return &AppError{
		Err:     ErrTooLarge,
		Message: message,
	}
}
