package audit

import (
	"context"
	"log"
	"time"
)

const (
	ActionUserRegistered = "USER_REGISTERED"
	ActionStatusChanged  = "STATUS_CHANGED"
	ActionPackageCreated = "PACKAGE_CREATED"
	ActionPackageUpdated = "PACKAGE_UPDATED"
	ActionPackageDeleted = "PACKAGE_DELETED"
	ActionBookingCreated = "BOOKING_CREATED"
	ActionPaymentSettled = "PAYMENT_SETTLED"
	ActionReviewCreated  = "REVIEW_CREATED"
)

type Entry struct {
	ID         string         `json:"id"`
	EntityKind string         `json:"entityKind"`
	EntityID   string         `json:"entityId"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type Reader interface {
	ListByEntity(ctx context.Context, entityID string) ([]Entry, error)
}

// Record writes e through r. Failures are logged, never returned.
func Record(ctx context.Context, r Recorder, e Entry) {
	if r == nil {
		return
	}
	if err := r.Record(ctx, e); err != nil {
		log.Printf("audit write failed kind=%s entity=%s action=%s err=%v", e.EntityKind, e.EntityID, e.Action, err)
	}
}
