package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a service can return.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindInfrastructure ErrorKind = "infrastructure"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the typed error returned by services. Message is safe to show
// to clients; Err is the underlying cause and is only ever logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(message string, details ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func NotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func ConflictError(message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Err: err}
}

func InfrastructureError(err error) *AppError {
	return &AppError{Kind: KindInfrastructure, Message: INTERNAL_SERVER_ERROR, Err: err}
}

// KindOf reports the kind of err. Errors that are not AppErrors are
// infrastructure failures.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
