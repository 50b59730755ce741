package money

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for every amount (NUMERIC(12,2)).
const Scale int32 = 2

// Amount is a decimal money value that encodes as a JSON number ("price": 1299.99)
// and decodes from either a JSON number or a numeric string.
type Amount struct {
	decimal.Decimal
}

var Zero = Amount{decimal.Zero}

// Max is the largest amount a NUMERIC(12,2) column holds.
var Max = MustParse("9999999999.99")

// Parse reads a decimal string and rounds it half away from zero to Scale, as a
// NUMERIC(12,2) column does on insert.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{d.Round(Scale)}, nil
}

// MustParse is Parse for literals.
func MustParse(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

// Exceeds reports whether a is larger than Max.
func (a Amount) Exceeds() bool {
	return a.GreaterThan(Max.Decimal)
}

// Times multiplies exactly; no rounding is applied.
func (a Amount) Times(n int) Amount {
	return Amount{a.Mul(decimal.NewFromInt(int64(n)))}
}

func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// SQL renders the amount for a NUMERIC parameter.
func (a Amount) SQL() string {
	return a.StringFixed(Scale)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(Scale)), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if err := a.Decimal.UnmarshalJSON(b); err != nil {
		return err
	}
	a.Decimal = a.Round(Scale)
	return nil
}
