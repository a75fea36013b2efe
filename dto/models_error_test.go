package dto

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	withStatus := &APIError{Message: "nope", StatusCode: 403, Kind: ErrKindTrialExpired}
	if got := withStatus.Error(); got != "TrialExpired (403): nope" {
		t.Fatalf("Error() = %q", got)
	}

	noStatus := &APIError{Message: "offline", Kind: ErrKindNetwork}
	if got := noStatus.Error(); got != "NetworkError: offline" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := &APIError{Message: "bad", StatusCode: 401, Kind: ErrKindAuth}
	wrapped := fmt.Errorf("request failed: %w", apiErr)

	got, ok := AsAPIError(wrapped)
	if !ok || got != apiErr {
		t.Fatalf("AsAPIError failed to unwrap: %v %v", got, ok)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatal("plain error must not unwrap to APIError")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &APIError{Kind: ErrKindValidation})

	if !IsKind(err, ErrKindValidation) {
		t.Fatal("expected ValidationError kind")
	}
	if IsKind(err, ErrKindAuth) {
		t.Fatal("kind must not match AuthError")
	}
	if IsKind(errors.New("plain"), ErrKindAuth) {
		t.Fatal("plain error has no kind")
	}
}
