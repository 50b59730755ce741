package user

import (
	"context"
	"time"

	"tourmarket/internal/lifecycle"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      Role             `json:"role"`
	Status    lifecycle.Status `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (u User) IsApproved() bool { return u.Status == lifecycle.StatusApproved }

// Filter fields left empty are unconstrained.
type Filter struct {
	Status lifecycle.Status
	Role   Role
}

type NewUser struct {
	Name   string
	Email  string
	Role   Role
	Status lifecycle.Status
}

// Store persists users. Get and SetStatus return an apperr NotFound for unknown ids;
// Insert returns an apperr DuplicateKey when the email is taken.
type Store interface {
	lifecycle.StatusSetter[User]
	List(ctx context.Context, f Filter) ([]User, error)
	Get(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u NewUser) (*User, error)
}
