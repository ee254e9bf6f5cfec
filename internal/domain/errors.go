package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store, dictionary import and API layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrDecode        = errors.New("dictionary decode failed")
	ErrMissingColumn = errors.New("missing required column")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewValidationError creates a FieldError for a single field.
func NewValidationError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
