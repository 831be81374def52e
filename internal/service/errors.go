package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes analysis service failures
type ErrorType string

const (
	// ErrTypeService indicates the service answered with a non-2xx status
	ErrTypeService ErrorType = "service"

	// ErrTypeNetwork indicates no response was received at all
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeTimeout indicates the configured client timeout or the caller's
	// deadline expired before a response arrived
	ErrTypeTimeout ErrorType = "timeout"

	// ErrTypeMalformedResponse indicates a response body that does not
	// match the expected schema
	ErrTypeMalformedResponse ErrorType = "malformed_response"

	// ErrTypeInternal indicates a client-side failure building the request
	ErrTypeInternal ErrorType = "internal"
)

// Messages shown when the service did not provide one
const (
	FallbackMessage          = "Analysis failed: the service returned no error details"
	FallbackNetworkMessage   = "Unable to reach the analysis service"
	FallbackTimeoutMessage   = "The analysis service did not respond in time"
	FallbackMalformedMessage = "The analysis service returned an unreadable response"
)

// ServiceError describes a failed analysis request
type ServiceError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message is the human-readable text from the error body, if any
	Message string `json:"message,omitempty"`

	// StatusCode is the HTTP status, 0 when no response was received
	StatusCode int `json:"status_code,omitempty"`

	// RequestID is the X-Request-ID sent with the request
	RequestID string `json:"request_id,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return "analysis service: " + strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches another *ServiceError with the same Type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

func newServiceError(errType ErrorType, statusCode int, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// IsType reports whether err is a *ServiceError of the given type
func IsType(err error, errType ErrorType) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Type == errType
}

// UserMessage returns the text to show the user for err. The message from
// the error body is used verbatim; otherwise a fallback for the error type
// is returned. It never returns an empty string for a non-nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var se *ServiceError
	if !errors.As(err, &se) || se == nil {
		return FallbackMessage
	}

	if msg := strings.TrimSpace(se.Message); msg != "" {
		return se.Message
	}

	switch se.Type {
	case ErrTypeNetwork:
		return FallbackNetworkMessage
	case ErrTypeTimeout:
		return FallbackTimeoutMessage
	case ErrTypeMalformedResponse:
		return FallbackMalformedMessage
	default:
		return FallbackMessage
	}
}
