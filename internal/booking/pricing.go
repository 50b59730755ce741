package booking

import (
	"math"

	"tourmarket/internal/apperr"
	"tourmarket/internal/money"
)

// MaxTravelers is the largest party size the INTEGER column holds.
const MaxTravelers = math.MaxInt32

// Quote computes the booking total as price × travelers.
//
// Rules:
// - travelers must be between 1 and MaxTravelers.
// - The product is exact: price is stored at two decimals, so no rounding is applied.
// - The total must fit the stored column.
func Quote(price money.Amount, travelers int) (money.Amount, error) {
	if travelers < 1 {
		return money.Zero, apperr.Validation("numberOfTravelers must be at least 1", map[string]string{"numberOfTravelers": "min=1"})
	}
	if travelers > MaxTravelers {
		return money.Zero, apperr.Validation("numberOfTravelers is too large", map[string]string{"numberOfTravelers": "max"})
	}
	if price.IsNegative() {
		return money.Zero, apperr.Validation("package price must be >= 0", map[string]string{"price": "gte=0"})
	}

	total := price.Times(travelers)
	if total.Exceeds() {
		return money.Zero, apperr.Validation("totalPrice exceeds the maximum amount", map[string]string{"totalPrice": "max"})
	}
	return total, nil
}
