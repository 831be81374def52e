package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestServiceError_Error(t *testing.T) {
	err := &ServiceError{
		Type:       ErrTypeService,
		Message:    "Analysis failed",
		StatusCode: 500,
		Cause:      errors.New("boom"),
	}

	msg := err.Error()
	for _, want := range []string{"type=service", "status=500", "Analysis failed", "cause=boom"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestServiceError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("wrapped: %w", newServiceError(ErrTypeNetwork, 0, "", cause))

	if !errors.Is(err, &ServiceError{Type: ErrTypeNetwork}) {
		t.Error("errors.Is should match on type")
	}
	if errors.Is(err, &ServiceError{Type: ErrTypeService}) {
		t.Error("errors.Is should not match a different type")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if !IsType(err, ErrTypeNetwork) {
		t.Error("IsType should see through wrapping")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("x"), FallbackMessage},
		{"verbatim message", &ServiceError{Type: ErrTypeService, Message: "  spaced  "}, "  spaced  "},
		{"blank message", &ServiceError{Type: ErrTypeService, Message: "   "}, FallbackMessage},
		{"network", &ServiceError{Type: ErrTypeNetwork}, FallbackNetworkMessage},
		{"timeout", &ServiceError{Type: ErrTypeTimeout}, FallbackTimeoutMessage},
		{"malformed", &ServiceError{Type: ErrTypeMalformedResponse}, FallbackMalformedMessage},
		{"internal", &ServiceError{Type: ErrTypeInternal}, FallbackMessage},
		{"typed nil", (*ServiceError)(nil), FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
