package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/memstore"
	"tourmarket/internal/user"
)

func newService() (*user.Service, *memstore.DB) {
	d := memstore.New()
	return user.NewService(d.Users(), nil, d.Audit()), d
}

func TestRegister_Defaults(t *testing.T) {
	svc, d := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, nil, user.RegisterInput{Name: " Ann ", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.Equal(t, lifecycle.StatusPending, u.Status)

	entries, err := d.Audit().ListByEntity(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "USER_REGISTERED", entries[0].Action)
}

func TestRegister_StatusOverride(t *testing.T) {
	svc, _ := newService()
	u, err := svc.Register(context.Background(), nil, user.RegisterInput{
		Name: "Org", Email: "org@example.com", Role: "organizer", Status: "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleOrganizer, u.Role)
	assert.True(t, u.IsApproved())
}

func TestRegister_Errors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, nil, user.RegisterInput{Email: "x@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindMissingField), "got %v", err)

	_, err = svc.Register(ctx, nil, user.RegisterInput{Name: "X", Email: "not-an-email"})
	require.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
	e, _ := apperr.As(err)
	assert.Equal(t, "Invalid email format", e.Message)

	_, err = svc.Register(ctx, nil, user.RegisterInput{Name: "X", Email: "x@example.com", Role: "pilot"})
	assert.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)

	_, err = svc.Register(ctx, nil, user.RegisterInput{Name: "X", Email: "dup@example.com"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, nil, user.RegisterInput{Name: "Y", Email: "dup@example.com"})
	assert.True(t, apperr.Is(err, apperr.KindDuplicateKey), "got %v", err)
}

func TestApproveThenReject_LastWins(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, nil, user.RegisterInput{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, nil, u.ID)
	require.NoError(t, err)
	got, err := svc.Reject(ctx, nil, u.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusRejected, got.Status)

	_, err = svc.Approve(ctx, nil, ids.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = svc.Approve(ctx, nil, "abc")
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))
}

func TestPrincipal(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, nil, user.RegisterInput{Name: "Ann", Email: "ann@example.com", Role: "admin", Status: "approved"})
	require.NoError(t, err)

	p, err := svc.Principal(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
	assert.Equal(t, "admin", p.Role)
	assert.Equal(t, "approved", p.Status)

	_, err = svc.Principal(ctx, ids.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
