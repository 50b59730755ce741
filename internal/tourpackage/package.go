// Package tourpackage holds tour packages: organizer-authored offers that admins
// approve before customers can book them.
package tourpackage

import (
	"context"
	"time"

	"github.com/gosimple/slug"

	"tourmarket/internal/lifecycle"
	"tourmarket/internal/money"
)

// Organizer is the weak reference from a package to its organizer. Available is
// false when the user no longer resolves.
type Organizer struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
}

type Package struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Destination string           `json:"destination"`
	Duration    int              `json:"duration"`
	Price       money.Amount     `json:"price"`
	OrganizerID string           `json:"organizerId"`
	Organizer   Organizer        `json:"organizer"`
	Status      lifecycle.Status `json:"status"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (p Package) Bookable() bool { return p.Status == lifecycle.StatusApproved }

type Filter struct {
	Status      lifecycle.Status
	OrganizerID string
}

type NewPackage struct {
	Name        string
	Slug        string
	Description string
	Destination string
	Duration    int
	Price       money.Amount
	OrganizerID string
	Status      lifecycle.Status
	ImageURL    *string
}

// Changes carries the columns an update writes; nil fields are left untouched.
// A non-nil ImageURL pointing at "" clears the image.
type Changes struct {
	Name        *string
	Slug        *string
	Description *string
	Destination *string
	Duration    *int
	Price       *money.Amount
	OrganizerID *string
	Status      *lifecycle.Status
	ImageURL    *string
}

func (c Changes) Empty() bool {
	return c == Changes{}
}

// Store persists packages. Reads resolve the organizer reference.
type Store interface {
	lifecycle.StatusSetter[Package]
	List(ctx context.Context, f Filter) ([]Package, error)
	Get(ctx context.Context, id string) (*Package, error)
	Insert(ctx context.Context, p NewPackage) (*Package, error)
	Update(ctx context.Context, id string, c Changes) (*Package, error)
	Delete(ctx context.Context, id string) error
}

// Slugify derives the URL slug stored with a package name.
func Slugify(name string) string {
	return slug.Make(name)
}
