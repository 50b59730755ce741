package audit

import (
	"context"
	"errors"
	"testing"
)

type failingRecorder struct{ calls int }

func (f *failingRecorder) Record(context.Context, Entry) error {
	f.calls++
	return errors.New("db down")
}

func TestRecord_SwallowsFailures(t *testing.T) {
	rec := &failingRecorder{}
	Record(context.Background(), rec, Entry{EntityKind: "booking", Action: ActionBookingCreated})
	if rec.calls != 1 {
		t.Fatalf("expected one write attempt, got %d", rec.calls)
	}

	// nil recorder is a no-op
	Record(context.Background(), nil, Entry{})
}
