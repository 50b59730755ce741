package review_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/apperr"
	"tourmarket/internal/booking"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/memstore"
	"tourmarket/internal/money"
	"tourmarket/internal/review"
	"tourmarket/internal/user"
)

func newService(t *testing.T, policy review.Policy) (*review.Service, *memstore.DB, *user.User) {
	t.Helper()
	d := memstore.New()
	u, err := d.Users().Insert(context.Background(), user.NewUser{Name: "Alice", Email: "alice@example.com", Role: user.RoleCustomer, Status: lifecycle.StatusApproved})
	require.NoError(t, err)
	return review.NewService(d.Reviews(), d.Bookings(), policy, nil, d.Audit()), d, u
}

func TestCreate_RatingRange(t *testing.T) {
	svc, _, u := newService(t, review.Policy{})
	ctx := context.Background()
	pkgID := ids.New()

	for _, r := range []json.Number{"0", "6", "-1", "4.5", "5.01"} {
		_, err := svc.Create(ctx, nil, review.CreateInput{PackageID: pkgID, UserID: u.ID, Rating: r})
		assert.True(t, apperr.Is(err, apperr.KindInvalidRange), "rating %s: got %v", r, err)
	}
	for _, r := range []json.Number{"1", "2", "3", "4.0", "5"} {
		_, err := svc.Create(ctx, nil, review.CreateInput{PackageID: pkgID, UserID: u.ID, Rating: r})
		assert.NoError(t, err, "rating %s", r)
	}

	got, err := svc.List(ctx, pkgID)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Alice", got[0].User.Name)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, u := newService(t, review.Policy{})
	ctx := context.Background()

	_, err := svc.Create(ctx, nil, review.CreateInput{PackageID: ids.New(), UserID: u.ID})
	assert.True(t, apperr.Is(err, apperr.KindMissingField))
	_, err = svc.Create(ctx, nil, review.CreateInput{PackageID: "p", UserID: u.ID, Rating: "5"})
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))

	_, err = svc.List(ctx, "")
	assert.True(t, apperr.Is(err, apperr.KindMissingField))
	_, err = svc.List(ctx, "bad")
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))
}

func TestCreate_Policies(t *testing.T) {
	svc, d, u := newService(t, review.Policy{RequirePaidBooking: true, OnePerPackage: true})
	ctx := context.Background()
	pkgID := ids.New()
	in := review.CreateInput{PackageID: pkgID, UserID: u.ID, Rating: "5", Comment: "Great"}

	_, err := svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindForbidden), "got %v", err)

	b, err := d.Bookings().Insert(ctx, booking.NewBooking{PackageID: pkgID, UserID: u.ID, NumberOfTravelers: 1, TotalPrice: money.MustParse("10")})
	require.NoError(t, err)
	_, err = d.Bookings().Settle(ctx, b.ID, nil, booking.PaymentPaid)
	require.NoError(t, err)

	rv, err := svc.Create(ctx, nil, in)
	require.NoError(t, err)
	require.NotNil(t, rv.Comment)
	assert.Equal(t, "Great", *rv.Comment)

	_, err = svc.Create(ctx, nil, in)
	assert.True(t, apperr.Is(err, apperr.KindDuplicateKey), "got %v", err)
}

func TestCreate_NoPolicyAllowsRepeats(t *testing.T) {
	svc, _, u := newService(t, review.Policy{})
	ctx := context.Background()
	in := review.CreateInput{PackageID: ids.New(), UserID: u.ID, Rating: "3"}

	_, err := svc.Create(ctx, nil, in)
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, in)
	require.NoError(t, err)
}
