package tourpackage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/memstore"
	"tourmarket/internal/money"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
)

type fixture struct {
	d   *memstore.DB
	svc *tourpackage.Service
}

func newFixture(authz actor.Authorizer) fixture {
	d := memstore.New()
	return fixture{d: d, svc: tourpackage.NewService(d.Packages(), d.Users(), authz, d.Audit())}
}

func (f fixture) addUser(t *testing.T, email string, role user.Role, status lifecycle.Status) *user.User {
	t.Helper()
	u, err := f.d.Users().Insert(context.Background(), user.NewUser{Name: email, Email: email, Role: role, Status: status})
	require.NoError(t, err)
	return u
}

func intp(n int) *int { return &n }

func amountp(s string) *money.Amount {
	a := money.MustParse(s)
	return &a
}

func validInput(organizerID string) tourpackage.CreateInput {
	return tourpackage.CreateInput{
		Name:        "Mystical Bali Escape",
		Description: "Temples",
		Destination: "Bali",
		Duration:    intp(7),
		Price:       amountp("1299.99"),
		OrganizerID: organizerID,
		Status:      "approved",
	}
}

func TestCreate_StartsPending(t *testing.T) {
	f := newFixture(nil)
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)

	pkg, err := f.svc.Create(context.Background(), nil, validInput(org.ID))
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPending, pkg.Status)
	assert.Equal(t, "mystical-bali-escape", pkg.Slug)
	assert.True(t, pkg.Price.Equal(money.MustParse("1299.99")))
	assert.Equal(t, "org@example.com", pkg.Organizer.Email)
}

func TestCreate_UnapprovedOrganizerIsForbiddenRegardless(t *testing.T) {
	f := newFixture(nil)
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusPending)

	in := validInput(org.ID)
	in.Duration = intp(0)
	in.Price = amountp("-5")
	_, err := f.svc.Create(context.Background(), nil, in)
	assert.True(t, apperr.Is(err, apperr.KindForbidden), "got %v", err)
}

func TestCreate_Errors(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)
	cust := f.addUser(t, "cust@example.com", user.RoleCustomer, lifecycle.StatusApproved)

	in := validInput(org.ID)
	in.Price = nil
	_, err := f.svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindMissingField), "got %v", err)

	_, err = f.svc.Create(ctx, nil, validInput("nope"))
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier), "got %v", err)

	_, err = f.svc.Create(ctx, nil, validInput(cust.ID))
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	_, err = f.svc.Create(ctx, nil, validInput(ids.New()))
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	in = validInput(org.ID)
	in.Duration = intp(0)
	_, err = f.svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	in = validInput(org.ID)
	in.Price = amountp("0")
	_, err = f.svc.Create(ctx, nil, in)
	assert.NoError(t, err, "a free package is allowed")
}

func TestCreate_RejectsValuesOutsideColumnRange(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)

	in := validInput(org.ID)
	in.Price = amountp("1000000000000")
	_, err := f.svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	in = validInput(org.ID)
	in.Duration = intp(3_000_000_000)
	_, err = f.svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	in = validInput(org.ID)
	in.Price = amountp("9999999999.99")
	_, err = f.svc.Create(ctx, nil, in)
	assert.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)
	pending := f.addUser(t, "late@example.com", user.RoleOrganizer, lifecycle.StatusPending)

	pkg, err := f.svc.Create(ctx, nil, validInput(org.ID))
	require.NoError(t, err)

	name := "Bali Deluxe"
	got, err := f.svc.Update(ctx, nil, pkg.ID, tourpackage.Patch{Name: &name, Price: amountp("1500")})
	require.NoError(t, err)
	assert.Equal(t, "Bali Deluxe", got.Name)
	assert.Equal(t, "bali-deluxe", got.Slug)
	assert.Equal(t, "Bali", got.Destination)
	assert.True(t, got.Price.Equal(money.MustParse("1500")))

	archived := "archived"
	got, err = f.svc.Update(ctx, nil, pkg.ID, tourpackage.Patch{Status: &archived})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusArchived, got.Status)

	bogus := "deleted"
	_, err = f.svc.Update(ctx, nil, pkg.ID, tourpackage.Patch{Status: &bogus})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	_, err = f.svc.Update(ctx, nil, pkg.ID, tourpackage.Patch{OrganizerID: &pending.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	blank := "  "
	_, err = f.svc.Update(ctx, nil, pkg.ID, tourpackage.Patch{Name: &blank})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	_, err = f.svc.Update(ctx, nil, ids.New(), tourpackage.Patch{Name: &name})
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func TestUpdate_CapabilitySplit(t *testing.T) {
	f := newFixture(actor.RoleBased{})
	ctx := context.Background()
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)
	orgP := org.Principal()

	pkg, err := f.svc.Create(ctx, orgP, validInput(org.ID))
	require.NoError(t, err)

	desc := "Rice paddies"
	_, err = f.svc.Update(ctx, orgP, pkg.ID, tourpackage.Patch{Description: &desc})
	require.NoError(t, err)

	approved := "approved"
	_, err = f.svc.Update(ctx, orgP, pkg.ID, tourpackage.Patch{Status: &approved})
	assert.True(t, apperr.Is(err, apperr.KindForbidden), "got %v", err)

	admin := &actor.Principal{UserID: ids.New(), Role: actor.RoleAdmin, Status: "approved"}
	got, err := f.svc.Update(ctx, admin, pkg.ID, tourpackage.Patch{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusApproved, got.Status)
}

func TestDelete(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	org := f.addUser(t, "org@example.com", user.RoleOrganizer, lifecycle.StatusApproved)
	pkg, err := f.svc.Create(ctx, nil, validInput(org.ID))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, nil, pkg.ID))
	_, err = f.svc.Get(ctx, pkg.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(f.svc.Delete(ctx, nil, pkg.ID), apperr.KindNotFound))
	assert.True(t, apperr.Is(f.svc.Delete(ctx, nil, "x"), apperr.KindInvalidIdentifier))
}

func TestList_Filters(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	a := f.addUser(t, "a@example.com", user.RoleOrganizer, lifecycle.StatusApproved)
	b := f.addUser(t, "b@example.com", user.RoleOrganizer, lifecycle.StatusApproved)

	p1, err := f.svc.Create(ctx, nil, validInput(a.ID))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, nil, validInput(b.ID))
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, nil, p1.ID)
	require.NoError(t, err)

	got, err := f.svc.List(ctx, tourpackage.Filter{Status: lifecycle.StatusApproved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, p1.ID, got[0].ID)

	got, err = f.svc.List(ctx, tourpackage.Filter{OrganizerID: b.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b@example.com", got[0].Organizer.Email)

	_, err = f.svc.List(ctx, tourpackage.Filter{OrganizerID: "bad"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))
}
