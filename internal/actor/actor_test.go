package actor

import (
	"context"
	"testing"

	"tourmarket/internal/apperr"
)

func TestOpen_AllowsAnonymous(t *testing.T) {
	if err := (Open{}).Authorize(context.Background(), nil, CapTransition, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRoleBased(t *testing.T) {
	ctx := context.Background()
	admin := &Principal{UserID: "a", Role: RoleAdmin, Status: "approved"}
	org := &Principal{UserID: "o", Role: RoleOrganizer, Status: "approved"}
	pendingOrg := &Principal{UserID: "p", Role: RoleOrganizer, Status: "pending"}
	cust := &Principal{UserID: "c", Role: RoleCustomer, Status: "approved"}

	cases := []struct {
		name    string
		p       *Principal
		c       Capability
		owner   string
		allowed bool
	}{
		{"anonymous", nil, CapBook, "c", false},
		{"admin transitions", admin, CapTransition, "", true},
		{"organizer cannot transition", org, CapTransition, "", false},
		{"organizer edits own package", org, CapPackageEdit, "o", true},
		{"organizer cannot edit others", org, CapPackageEdit, "x", false},
		{"organizer cannot admin-edit", org, CapPackageAdminEdit, "o", false},
		{"pending organizer blocked", pendingOrg, CapPackageEdit, "p", false},
		{"customer books for self", cust, CapBook, "c", true},
		{"customer cannot book for others", cust, CapBook, "x", false},
		{"customer cannot read audit", cust, CapAuditRead, "", false},
	}
	for _, tc := range cases {
		err := (RoleBased{}).Authorize(ctx, tc.p, tc.c, tc.owner)
		if tc.allowed && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.allowed && !apperr.Is(err, apperr.KindForbidden) {
			t.Fatalf("%s: expected forbidden, got %v", tc.name, err)
		}
	}
}
