package user

import (
	"context"
	"log"
	"strings"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/validation"
)

type Service struct {
	lifecycle.Approver[User]

	Store Store
	Audit audit.Recorder
}

func NewService(store Store, authz actor.Authorizer, rec audit.Recorder) *Service {
	return &Service{
		Approver: lifecycle.Approver[User]{Kind: lifecycle.KindUser, Store: store, Authz: authz, Audit: rec},
		Store:    store,
		Audit:    rec,
	}
}

type RegisterInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"omitempty,oneof=customer organizer admin"`
	Status string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

// Register creates a user. Role defaults to customer and status to pending; a
// caller-supplied status is kept.
func (s *Service) Register(ctx context.Context, p *actor.Principal, in RegisterInput) (*User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Check(in); err != nil {
		if e, ok := apperr.As(err); ok {
			switch e.Kind {
			case apperr.KindMissingField:
				e.Message = "Name and email are required"
			case apperr.KindValidation:
				if _, bad := e.Fields["email"]; bad {
					e.Message = "Invalid email format"
				}
			}
		}
		return nil, err
	}

	nu := NewUser{Name: in.Name, Email: in.Email, Role: RoleCustomer, Status: lifecycle.StatusPending}
	if in.Role != "" {
		nu.Role = Role(in.Role)
	}
	if in.Status != "" {
		nu.Status = lifecycle.Status(in.Status)
	}

	u, err := s.Store.Insert(ctx, nu)
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.Audit, audit.Entry{
		EntityKind: string(lifecycle.KindUser),
		EntityID:   u.ID,
		Action:     audit.ActionUserRegistered,
		Actor:      p.Label(),
		Metadata:   map[string]any{"role": u.Role, "status": u.Status},
	})
	log.Printf("user registered id=%s role=%s status=%s", u.ID, u.Role, u.Status)
	return u, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]User, error) {
	return s.Store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, rawID string) (*User, error) {
	id, err := ids.Parse("user", rawID)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

// Principal resolves the acting user for a request.
func (s *Service) Principal(ctx context.Context, userID string) (*actor.Principal, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Principal(), nil
}

func (u *User) Principal() *actor.Principal {
	return &actor.Principal{UserID: u.ID, Role: string(u.Role), Status: string(u.Status)}
}
