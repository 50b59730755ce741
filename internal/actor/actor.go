// Package actor carries the acting principal through every workflow call and
// decides whether that principal may use a capability.
package actor

import (
	"context"

	"tourmarket/internal/apperr"
)

const (
	RoleCustomer  = "customer"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// Principal is the user a request acts as. A nil *Principal is an anonymous caller.
type Principal struct {
	UserID string
	Role   string
	Status string
}

// Label identifies the principal in audit entries.
func (p *Principal) Label() string {
	if p == nil {
		return "anonymous"
	}
	return p.Role + ":" + p.UserID
}

type Capability string

const (
	// CapTransition covers approve/reject of users and packages.
	CapTransition       Capability = "lifecycle:transition"
	CapPackageCreate    Capability = "package:create"
	CapPackageEdit      Capability = "package:edit"
	CapPackageAdminEdit Capability = "package:admin-edit"
	CapPackageDelete    Capability = "package:delete"
	CapBook             Capability = "booking:create"
	CapPay              Capability = "payment:settle"
	CapReview           Capability = "review:create"
	CapAuditRead        Capability = "audit:read"
)

// Authorizer decides whether p may use c on a resource owned by ownerID ("" when the
// capability is not owner-scoped).
type Authorizer interface {
	Authorize(ctx context.Context, p *Principal, c Capability, ownerID string) error
}

// Open allows every caller, authenticated or not.
type Open struct{}

func (Open) Authorize(context.Context, *Principal, Capability, string) error { return nil }

// RoleBased grants capabilities by role, approval status and ownership.
type RoleBased struct{}

func (RoleBased) Authorize(_ context.Context, p *Principal, c Capability, ownerID string) error {
	if p == nil {
		return apperr.Forbidden("an acting user is required")
	}
	if p.Status != "approved" {
		return apperr.Forbidden("acting user is not approved")
	}
	if p.Role == RoleAdmin {
		return nil
	}

	switch c {
	case CapPackageCreate, CapPackageEdit, CapPackageDelete:
		if p.Role == RoleOrganizer && p.UserID == ownerID {
			return nil
		}
	case CapBook, CapPay, CapReview:
		if p.Role == RoleCustomer && p.UserID == ownerID {
			return nil
		}
	}
	return apperr.Forbidden("not allowed to " + string(c))
}
