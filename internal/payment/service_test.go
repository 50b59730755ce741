package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/booking"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/memstore"
	"tourmarket/internal/money"
	"tourmarket/internal/payment"
	"tourmarket/internal/user"
)

func newBooking(t *testing.T, d *memstore.DB) (*booking.Booking, *user.User) {
	t.Helper()
	ctx := context.Background()
	cust, err := d.Users().Insert(ctx, user.NewUser{Name: "Alice", Email: "alice@example.com", Role: user.RoleCustomer, Status: lifecycle.StatusApproved})
	require.NoError(t, err)
	b, err := d.Bookings().Insert(ctx, booking.NewBooking{
		PackageID: ids.New(), UserID: cust.ID, NumberOfTravelers: 3, TotalPrice: money.MustParse("300.00"),
	})
	require.NoError(t, err)
	return b, cust
}

func TestPay_OnceThenAlreadyPaid(t *testing.T) {
	d := memstore.New()
	ctx := context.Background()
	b, _ := newBooking(t, d)
	svc := payment.NewService(d.Bookings(), nil, d.Audit())

	paid, err := svc.Pay(ctx, nil, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentPaid, paid.PaymentStatus)

	_, err = svc.Pay(ctx, nil, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindAlreadyPaid), "got %v", err)

	got, err := d.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentPaid, got.PaymentStatus)

	entries, err := d.Audit().ListByEntity(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPay_Errors(t *testing.T) {
	svc := payment.NewService(memstore.New().Bookings(), nil, nil)
	ctx := context.Background()

	_, err := svc.Pay(ctx, nil, "")
	assert.True(t, apperr.Is(err, apperr.KindMissingField))
	_, err = svc.Pay(ctx, nil, "12")
	assert.True(t, apperr.Is(err, apperr.KindInvalidIdentifier))
	_, err = svc.Pay(ctx, nil, ids.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPay_RoleBasedOwner(t *testing.T) {
	d := memstore.New()
	ctx := context.Background()
	b, cust := newBooking(t, d)
	svc := payment.NewService(d.Bookings(), actor.RoleBased{}, nil)

	other := &actor.Principal{UserID: ids.New(), Role: actor.RoleCustomer, Status: "approved"}
	_, err := svc.Pay(ctx, other, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden), "got %v", err)

	got, err := d.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentPending, got.PaymentStatus)

	_, err = svc.Pay(ctx, cust.Principal(), b.ID)
	require.NoError(t, err)
}
