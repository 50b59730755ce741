package review

import (
	"context"
	"time"
)

// UserRef is the weak reference from a review to its author.
type UserRef struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Name      string `json:"name,omitempty"`
}

type Review struct {
	ID         string    `json:"id"`
	PackageID  string    `json:"packageId"`
	UserID     string    `json:"userId"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	ReviewDate time.Time `json:"reviewDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *UserRef `json:"user,omitempty"`
}

type NewReview struct {
	PackageID string
	UserID    string
	Rating    int
	Comment   *string
}

type Store interface {
	// ListByPackage resolves each review's author.
	ListByPackage(ctx context.Context, packageID string) ([]Review, error)
	Insert(ctx context.Context, r NewReview) (*Review, error)
	Exists(ctx context.Context, userID, packageID string) (bool, error)
}

// Policy holds the optional review eligibility rules. The zero value enforces neither.
type Policy struct {
	// RequirePaidBooking limits reviews to customers with a paid booking for the package.
	RequirePaidBooking bool
	// OnePerPackage allows a single review per user and package.
	OnePerPackage bool
}
