package orchestrator

import (
	"errors"
	"fmt"
)

// ValidationError is returned when analyze input is rejected before any
// request is made
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// NewValidationError creates a validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
}

// IsValidationError reports whether err is or wraps a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
