package booking

import (
	"context"
	"time"

	"tourmarket/internal/money"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	// PaymentFailed is a valid stored value that no workflow produces yet.
	PaymentFailed PaymentStatus = "failed"
)

// PackageRef is the weak reference from a booking to its package.
type PackageRef struct {
	ID          string        `json:"id"`
	Available   bool          `json:"available"`
	Name        string        `json:"name,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Price       *money.Amount `json:"price,omitempty"`
}

// UserRef is the weak reference from a booking to its customer.
type UserRef struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Booking references are resolved only on reads that populate them; a freshly
// created booking carries ids only.
type Booking struct {
	ID                string        `json:"id"`
	PackageID         string        `json:"packageId"`
	UserID            string        `json:"userId"`
	BookingDate       time.Time     `json:"bookingDate"`
	NumberOfTravelers int           `json:"numberOfTravelers"`
	TotalPrice        money.Amount  `json:"totalPrice"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`

	Package *PackageRef `json:"package,omitempty"`
	User    *UserRef    `json:"user,omitempty"`
}

type Filter struct {
	UserID    string
	PackageID string
}

type NewBooking struct {
	PackageID         string
	UserID            string
	NumberOfTravelers int
	TotalPrice        money.Amount
}

// SettleCheck inspects the locked booking and returns an error to abort the write.
type SettleCheck func(b *Booking) error

type Store interface {
	List(ctx context.Context, f Filter) ([]Booking, error)
	Get(ctx context.Context, id string) (*Booking, error)
	Insert(ctx context.Context, b NewBooking) (*Booking, error)
	// Settle reads the booking, runs check and writes next as one atomic step.
	// Concurrent calls for the same booking are serialized.
	Settle(ctx context.Context, id string, check SettleCheck, next PaymentStatus) (*Booking, error)
	HasPaidBooking(ctx context.Context, userID, packageID string) (bool, error)
}
