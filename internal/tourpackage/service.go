package tourpackage

import (
	"context"
	"log"
	"math"
	"strings"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/money"
	"tourmarket/internal/user"
	"tourmarket/internal/validation"
)

// UserGetter resolves organizer references. user.Store satisfies it.
type UserGetter interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

type Service struct {
	lifecycle.Approver[Package]

	Store Store
	Users UserGetter
	Authz actor.Authorizer
	Audit audit.Recorder
}

func NewService(store Store, users UserGetter, authz actor.Authorizer, rec audit.Recorder) *Service {
	if authz == nil {
		authz = actor.Open{}
	}
	return &Service{
		Approver: lifecycle.Approver[Package]{Kind: lifecycle.KindPackage, Store: store, Authz: authz, Audit: rec},
		Store:    store,
		Users:    users,
		Authz:    authz,
		Audit:    rec,
	}
}

type CreateInput struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Destination string        `json:"destination" validate:"required"`
	Duration    *int          `json:"duration" validate:"required"`
	Price       *money.Amount `json:"price" validate:"required"`
	OrganizerID string        `json:"organizerId" validate:"required"`
	ImageURL    string        `json:"imageUrl"`
	// Status is accepted and ignored: new packages always start pending.
	Status string `json:"status"`
}

// Create checks presence first, then the organizer, then field ranges, so an
// unapproved organizer is reported as Forbidden whatever else is wrong.
func (s *Service) Create(ctx context.Context, p *actor.Principal, in CreateInput) (*Package, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Destination = strings.TrimSpace(in.Destination)
	if err := validation.Check(in); err != nil {
		if e, ok := apperr.As(err); ok && e.Kind == apperr.KindMissingField {
			e.Message = "Missing required package fields or organizerId"
		}
		return nil, err
	}

	organizerID, err := ids.Parse("organizer", in.OrganizerID)
	if err != nil {
		return nil, err
	}
	if err := s.Authz.Authorize(ctx, p, actor.CapPackageCreate, organizerID); err != nil {
		return nil, err
	}
	if err := s.checkOrganizer(ctx, organizerID, "Invalid organizer ID or user is not an organizer role"); err != nil {
		return nil, err
	}
	if err := checkRanges(in.Duration, in.Price); err != nil {
		return nil, err
	}

	np := NewPackage{
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		Destination: in.Destination,
		Duration:    *in.Duration,
		Price:       *in.Price,
		OrganizerID: organizerID,
		Status:      lifecycle.StatusPending,
	}
	if img := strings.TrimSpace(in.ImageURL); img != "" {
		np.ImageURL = &img
	}

	pkg, err := s.Store.Insert(ctx, np)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: string(lifecycle.KindPackage),
		EntityID:   pkg.ID,
		Action:     audit.ActionPackageCreated,
		Actor:      p.Label(),
		Metadata:   map[string]any{"organizerId": organizerID, "price": pkg.Price},
	})
	log.Printf("package created id=%s organizer=%s", pkg.ID, organizerID)
	return pkg, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Package, error) {
	if f.OrganizerID != "" {
		id, err := ids.Parse("organizer", f.OrganizerID)
		if err != nil {
			return nil, err
		}
		f.OrganizerID = id
	}
	return s.Store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, rawID string) (*Package, error) {
	id, err := ids.Parse("package", rawID)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

// Update applies a partial update. Content fields need package:edit on the current
// owner; status and organizerId need package:admin-edit.
func (s *Service) Update(ctx context.Context, p *actor.Principal, rawID string, patch Patch) (*Package, error) {
	id, err := ids.Parse("package", rawID)
	if err != nil {
		return nil, err
	}
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.touchesContent() {
		if err := s.Authz.Authorize(ctx, p, actor.CapPackageEdit, current.OrganizerID); err != nil {
			return nil, err
		}
	}
	if patch.touchesAdmin() {
		if err := s.Authz.Authorize(ctx, p, actor.CapPackageAdminEdit, current.OrganizerID); err != nil {
			return nil, err
		}
	}

	var c Changes
	blank := map[string]string{}
	text := func(field string, v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			blank[field] = "required"
		}
		return &t
	}
	c.Name = text("name", patch.Name)
	c.Description = text("description", patch.Description)
	c.Destination = text("destination", patch.Destination)
	if len(blank) > 0 {
		return nil, apperr.Validation("Validation Error", blank)
	}
	if c.Name != nil {
		sl := Slugify(*c.Name)
		c.Slug = &sl
	}
	if err := checkRanges(patch.Duration, patch.Price); err != nil {
		return nil, err
	}
	c.Duration = patch.Duration
	c.Price = patch.Price
	if patch.ImageURL != nil {
		img := strings.TrimSpace(*patch.ImageURL)
		c.ImageURL = &img
	}

	if patch.Status != nil {
		st, err := lifecycle.ParseStatus(lifecycle.KindPackage, *patch.Status)
		if err != nil {
			return nil, err
		}
		c.Status = &st
	}
	if patch.OrganizerID != nil {
		orgID, err := ids.Parse("organizer", *patch.OrganizerID)
		if err != nil {
			return nil, err
		}
		if err := s.checkOrganizer(ctx, orgID, "Invalid or unapproved organizer for package update"); err != nil {
			if apperr.Is(err, apperr.KindForbidden) {
				return nil, apperr.Validation("Invalid or unapproved organizer for package update", map[string]string{"organizerId": "approved"})
			}
			return nil, err
		}
		c.OrganizerID = &orgID
	}

	if c.Empty() {
		return current, nil
	}

	pkg, err := s.Store.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: string(lifecycle.KindPackage),
		EntityID:   id,
		Action:     audit.ActionPackageUpdated,
		Actor:      p.Label(),
		Metadata:   map[string]any{"fields": patch.Fields()},
	})
	log.Printf("package updated id=%s fields=%s", id, strings.Join(patch.Fields(), ","))
	return pkg, nil
}

// Delete removes the package. Bookings and reviews that reference it are kept.
func (s *Service) Delete(ctx context.Context, p *actor.Principal, rawID string) error {
	id, err := ids.Parse("package", rawID)
	if err != nil {
		return err
	}
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Authz.Authorize(ctx, p, actor.CapPackageDelete, current.OrganizerID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: string(lifecycle.KindPackage),
		EntityID:   id,
		Action:     audit.ActionPackageDeleted,
		Actor:      p.Label(),
		Metadata:   map[string]any{"name": current.Name},
	})
	log.Printf("package deleted id=%s", id)
	return nil
}

// checkOrganizer requires an existing user with the organizer role (ValidationError)
// whose account is approved (Forbidden).
func (s *Service) checkOrganizer(ctx context.Context, organizerID, invalidMsg string) error {
	u, err := s.Users.Get(ctx, organizerID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Validation(invalidMsg, map[string]string{"organizerId": "organizer"})
		}
		return err
	}
	if u.Role != user.RoleOrganizer {
		return apperr.Validation(invalidMsg, map[string]string{"organizerId": "organizer"})
	}
	if !u.IsApproved() {
		return apperr.Forbidden("Organizer account is not approved. Cannot create packages.")
	}
	return nil
}

// maxDuration is the largest value the INTEGER column holds.
const maxDuration = math.MaxInt32

func checkRanges(duration *int, price *money.Amount) error {
	bad := map[string]string{}
	switch {
	case duration == nil:
	case *duration <= 0:
		bad["duration"] = "gt=0"
	case *duration > maxDuration:
		bad["duration"] = "max"
	}
	switch {
	case price == nil:
	case price.IsNegative():
		bad["price"] = "gte=0"
	case price.Exceeds():
		bad["price"] = "max"
	}
	if len(bad) > 0 {
		return apperr.Validation("Validation Error", bad)
	}
	return nil
}
