// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a validation failure for a specific field.
// It wraps a sentinel error so callers can use errors.Is while still
// surfacing a field-level message to the client.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// validationSentinels lists every domain-level validation error. Kept in
// one place so IsValidationError stays in sync with the entity files.
var validationSentinels = []error{
	ErrValidation,
	ErrEmptyUserID, ErrEmptyName, ErrEmptyEmail, ErrInvalidEmail,
	ErrPasswordTooShort, ErrPasswordTooLong, ErrEmptyPassword, ErrEmptyHashedPassword,
	ErrTaskIDEmpty, ErrTaskUserIDEmpty, ErrTaskTitleEmpty,
	ErrInvalidTaskStatus, ErrInvalidTaskPriority, ErrInvalidTaskCategory,
	ErrTemplateIDEmpty, ErrTemplateUserIDEmpty, ErrTemplateNameEmpty, ErrTemplateTitleEmpty,
	ErrActivityIDEmpty, ErrActivityUserIDEmpty, ErrActivityTaskIDEmpty, ErrInvalidActivityAction,
}

// IsValidationError reports whether err is a domain validation failure,
// either one of the entity sentinels or a wrapped ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
