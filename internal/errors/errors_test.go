package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := stdErrors.Join(err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestCatalogErrorKinds(t *testing.T) {
	cause := stdErrors.New("dial tcp: connection refused")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		kind  Kind
	}{
		{"transport", NewTransportError("request failed", cause), IsTransport, KindTransport},
		{"malformed", NewMalformedError("bad json", cause), IsMalformed, KindMalformed},
		{"not found", NewNotFoundError("Movie not found!"), IsNotFound, KindNotFound},
		{"validation", NewValidationError("empty query"), IsValidation, KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Fatalf("check returned false for %v", tt.err)
			}

			wrapped := fmt.Errorf("search: %w", tt.err)
			if !tt.check(wrapped) {
				t.Fatalf("check returned false for wrapped %v", tt.err)
			}

			kind, ok := KindOf(wrapped)
			if !ok || kind != tt.kind {
				t.Fatalf("KindOf = %v, %v; want %v, true", kind, ok, tt.kind)
			}
		})
	}
}

func TestCatalogErrorUnwrap(t *testing.T) {
	cause := stdErrors.New("unexpected EOF")
	err := NewMalformedError("failed to decode response", cause)

	if !stdErrors.Is(err, cause) {
		t.Fatalf("errors.Is did not find the wrapped cause")
	}

	expected := "catalog malformed: failed to decode response: unexpected EOF"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}

func TestServiceMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("Movie not found!"))
	if got := ServiceMessage(err); got != "Movie not found!" {
		t.Fatalf("ServiceMessage = %q, want %q", got, "Movie not found!")
	}

	if got := ServiceMessage(stdErrors.New("plain")); got != "" {
		t.Fatalf("ServiceMessage on plain error = %q, want empty", got)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if _, ok := KindOf(stdErrors.New("plain")); ok {
		t.Fatalf("KindOf reported a kind for a plain error")
	}
	if IsNotFound(nil) {
		t.Fatalf("IsNotFound(nil) = true")
	}
}
