package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf_UnwrapsChain(t *testing.T) {
	err := fmt.Errorf("create booking: %w", InvalidState("package not bookable"))
	if got := KindOf(err); got != KindInvalidState {
		t.Fatalf("expected %s, got %s", KindInvalidState, got)
	}
	if !Is(err, KindInvalidState) {
		t.Fatalf("expected Is to match")
	}
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("expected internal, got %s", got)
	}
	if Is(nil, KindInternal) {
		t.Fatalf("nil must not match any kind")
	}
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("list users", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain")
	}
	if err.Detail != "connection refused" {
		t.Fatalf("unexpected detail %q", err.Detail)
	}
}
