package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/booking"
	"tourmarket/internal/memstore"
	"tourmarket/internal/money"
	"tourmarket/internal/seed"
	"tourmarket/internal/tourpackage"
)

func stores(d *memstore.DB) seed.Stores {
	return seed.Stores{Users: d.Users(), Packages: d.Packages(), Bookings: d.Bookings(), Reviews: d.Reviews()}
}

func TestRun_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := memstore.New()

	first, err := seed.Run(ctx, stores(d))
	require.NoError(t, err)
	assert.Equal(t, seed.Counts{Users: 7, Packages: 4, Bookings: 3, Reviews: 1}, first)

	second, err := seed.Run(ctx, stores(d))
	require.NoError(t, err)
	assert.Equal(t, seed.Counts{Users: 7, Packages: 4}, second)

	pkgs, err := d.Packages().List(ctx, tourpackage.Filter{})
	require.NoError(t, err)
	assert.Len(t, pkgs, 4)

	bookings, err := d.Bookings().List(ctx, booking.Filter{})
	require.NoError(t, err)
	require.Len(t, bookings, 3)

	paid := 0
	for _, b := range bookings {
		if b.PaymentStatus == booking.PaymentPaid {
			paid++
		}
		if b.Package.Name == "Mystical Bali Escape" {
			assert.True(t, b.TotalPrice.Equal(money.MustParse("2599.98")))
		}
	}
	assert.Equal(t, 2, paid)
}
