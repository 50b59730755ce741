package review

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
	"tourmarket/internal/validation"
)

// PaidBookings answers the RequirePaidBooking policy. booking.Store satisfies it.
type PaidBookings interface {
	HasPaidBooking(ctx context.Context, userID, packageID string) (bool, error)
}

type Service struct {
	Store    Store
	Bookings PaidBookings
	Policy   Policy
	Authz    actor.Authorizer
	Audit    audit.Recorder
}

func NewService(store Store, bookings PaidBookings, policy Policy, authz actor.Authorizer, rec audit.Recorder) *Service {
	if authz == nil {
		authz = actor.Open{}
	}
	return &Service{Store: store, Bookings: bookings, Policy: policy, Authz: authz, Audit: rec}
}

type CreateInput struct {
	PackageID string      `json:"packageId" validate:"required"`
	UserID    string      `json:"userId" validate:"required"`
	Rating    json.Number `json:"rating" validate:"required"`
	Comment   string      `json:"comment"`
}

// Create records a review. Presence, identifiers and rating range are checked in
// that order, then the policy toggles.
func (s *Service) Create(ctx context.Context, p *actor.Principal, in CreateInput) (*Review, error) {
	if err := validation.Check(in); err != nil {
		if e, ok := apperr.As(err); ok && e.Kind == apperr.KindMissingField {
			e.Message = "Package ID, User ID, and Rating are required"
		}
		return nil, err
	}
	packageID, err := ids.Parse("package", in.PackageID)
	if err != nil {
		return nil, err
	}
	userID, err := ids.Parse("user", in.UserID)
	if err != nil {
		return nil, err
	}
	rating, err := parseRating(in.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.Authz.Authorize(ctx, p, actor.CapReview, userID); err != nil {
		return nil, err
	}
	if s.Policy.RequirePaidBooking {
		ok, err := s.Bookings.HasPaidBooking(ctx, userID, packageID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Forbidden("You can only review packages you have booked and paid for.")
		}
	}
	if s.Policy.OnePerPackage {
		exists, err := s.Store.Exists(ctx, userID, packageID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.DuplicateKey("You have already reviewed this package.")
		}
	}

	nr := NewReview{PackageID: packageID, UserID: userID, Rating: rating}
	if c := strings.TrimSpace(in.Comment); c != "" {
		nr.Comment = &c
	}
	rv, err := s.Store.Insert(ctx, nr)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: "review",
		EntityID:   rv.ID,
		Action:     audit.ActionReviewCreated,
		Actor:      p.Label(),
		Metadata:   map[string]any{"packageId": packageID, "userId": userID, "rating": rating},
	})
	log.Printf("review created id=%s package=%s rating=%d", rv.ID, packageID, rating)
	return rv, nil
}

// List returns the reviews of one package; packageId is required.
func (s *Service) List(ctx context.Context, rawPackageID string) ([]Review, error) {
	if strings.TrimSpace(rawPackageID) == "" {
		return nil, apperr.MissingField("Valid Package ID is required to fetch reviews")
	}
	packageID, err := ids.Parse("package", rawPackageID)
	if err != nil {
		return nil, err
	}
	return s.Store.ListByPackage(ctx, packageID)
}

func parseRating(n json.Number) (int, error) {
	rating, ok := validation.WholeNumber(n.String())
	if !ok || rating < 1 || rating > 5 {
		return 0, apperr.InvalidRange("Rating must be between 1 and 5")
	}
	return int(rating), nil
}
