package booking

import (
	"context"
	"encoding/json"
	"log"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
	"tourmarket/internal/validation"
)

const entityKind = "booking"

type PackageGetter interface {
	Get(ctx context.Context, id string) (*tourpackage.Package, error)
}

type UserGetter interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	Store    Store
	Packages PackageGetter
	Users    UserGetter
	Authz    actor.Authorizer
	Audit    audit.Recorder
}

func NewService(store Store, packages PackageGetter, users UserGetter, authz actor.Authorizer, rec audit.Recorder) *Service {
	if authz == nil {
		authz = actor.Open{}
	}
	return &Service{Store: store, Packages: packages, Users: users, Authz: authz, Audit: rec}
}

// CreateInput accepts numberOfTravelers as a JSON number or a numeric string.
type CreateInput struct {
	PackageID         string      `json:"packageId" validate:"required"`
	UserID            string      `json:"userId" validate:"required"`
	NumberOfTravelers json.Number `json:"numberOfTravelers" validate:"required"`
}

// Create books a package for a customer. Checks run in order: presence, identifier
// format, package existence, package approval, customer eligibility, travelers.
// Each call creates a new booking.
func (s *Service) Create(ctx context.Context, p *actor.Principal, in CreateInput) (*Booking, error) {
	if err := validation.Check(in); err != nil {
		if e, ok := apperr.As(err); ok && e.Kind == apperr.KindMissingField {
			e.Message = "Package ID, User ID, and Number of Travelers are required"
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
	if err := s.Authz.Authorize(ctx, p, actor.CapBook, userID); err != nil {
		return nil, err
	}

	pkg, err := s.Packages.Get(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.Bookable() {
		return nil, apperr.InvalidState("package not bookable")
	}

	if err := s.checkCustomer(ctx, userID); err != nil {
		return nil, err
	}

	n, ok := validation.WholeNumber(in.NumberOfTravelers.String())
	if !ok {
		return nil, apperr.Validation("numberOfTravelers must be an integer", map[string]string{"numberOfTravelers": "integer"})
	}
	travelers := int(n)
	total, err := Quote(pkg.Price, travelers)
	if err != nil {
		return nil, err
	}

	b, err := s.Store.Insert(ctx, NewBooking{
		PackageID:         packageID,
		UserID:            userID,
		NumberOfTravelers: travelers,
		TotalPrice:        total,
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: entityKind,
		EntityID:   b.ID,
		Action:     audit.ActionBookingCreated,
		Actor:      p.Label(),
		Metadata:   map[string]any{"packageId": packageID, "userId": userID, "travelers": travelers, "totalPrice": total},
	})
	log.Printf("booking created id=%s package=%s user=%s total=%s", b.ID, packageID, userID, total.SQL())
	return b, nil
}

// checkCustomer requires an existing, approved user with the customer role.
func (s *Service) checkCustomer(ctx context.Context, userID string) error {
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.InvalidState("customer not eligible")
		}
		return err
	}
	if u.Role != user.RoleCustomer || u.Status != lifecycle.StatusApproved {
		return apperr.InvalidState("customer not eligible")
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Booking, error) {
	if f.UserID != "" {
		id, err := ids.Parse("user", f.UserID)
		if err != nil {
			return nil, err
		}
		f.UserID = id
	}
	if f.PackageID != "" {
		id, err := ids.Parse("package", f.PackageID)
		if err != nil {
			return nil, err
		}
		f.PackageID = id
	}
	return s.Store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, rawID string) (*Booking, error) {
	id, err := ids.Parse("booking", rawID)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}
