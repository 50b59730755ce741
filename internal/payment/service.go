// Package payment settles bookings. Settlement is mocked: no gateway is called and
// a pending booking always becomes paid.
package payment

import (
	"context"
	"log"
	"strings"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/booking"
	"tourmarket/internal/ids"
)

type Settler interface {
	Settle(ctx context.Context, id string, check booking.SettleCheck, next booking.PaymentStatus) (*booking.Booking, error)
}

type Service struct {
	Bookings Settler
	Authz    actor.Authorizer
	Audit    audit.Recorder
}

func NewService(bookings Settler, authz actor.Authorizer, rec audit.Recorder) *Service {
	if authz == nil {
		authz = actor.Open{}
	}
	return &Service{Bookings: bookings, Authz: authz, Audit: rec}
}

// Pay moves a pending booking to paid. A booking that is already paid fails with
// AlreadyPaid and is left unchanged; the check and the write happen under one lock.
func (s *Service) Pay(ctx context.Context, p *actor.Principal, rawID string) (*booking.Booking, error) {
	if strings.TrimSpace(rawID) == "" {
		return nil, apperr.MissingField("Booking ID is required for payment")
	}
	id, err := ids.Parse("booking", rawID)
	if err != nil {
		return nil, apperr.InvalidIdentifier("Invalid Booking ID format")
	}

	var from booking.PaymentStatus
	b, err := s.Bookings.Settle(ctx, id, func(cur *booking.Booking) error {
		if err := s.Authz.Authorize(ctx, p, actor.CapPay, cur.UserID); err != nil {
			return err
		}
		if cur.PaymentStatus == booking.PaymentPaid {
			return apperr.AlreadyPaid("This booking is already paid")
		}
		from = cur.PaymentStatus
		return nil
	}, booking.PaymentPaid)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: "booking",
		EntityID:   id,
		Action:     audit.ActionPaymentSettled,
		Actor:      p.Label(),
		Metadata:   map[string]any{"from": from, "to": booking.PaymentPaid, "amount": b.TotalPrice},
	})
	log.Printf("payment settled booking=%s amount=%s actor=%s", id, b.TotalPrice.SQL(), p.Label())
	return b, nil
}
