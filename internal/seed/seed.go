// Package seed loads the sample marketplace: an admin, organizers, customers,
// packages, bookings and a review. Running it again adds only what is missing.
package seed

import (
	"context"
	"fmt"
	"log"

	"tourmarket/internal/apperr"
	"tourmarket/internal/booking"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/money"
	"tourmarket/internal/review"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
)

type Stores struct {
	Users    user.Store
	Packages tourpackage.Store
	Bookings booking.Store
	Reviews  review.Store
}

// Counts reports users and packages considered, and bookings and reviews newly created.
type Counts struct {
	Users    int `json:"users"`
	Packages int `json:"packages"`
	Bookings int `json:"bookings"`
	Reviews  int `json:"reviews"`
}

var sampleUsers = []user.NewUser{
	{Name: "Admin User", Email: "admin@example.com", Role: user.RoleAdmin, Status: lifecycle.StatusApproved},
	{Name: "Wanderlust Tours", Email: "organizer1@example.com", Role: user.RoleOrganizer, Status: lifecycle.StatusApproved},
	{Name: "Adventure Co.", Email: "organizer2@example.com", Role: user.RoleOrganizer, Status: lifecycle.StatusApproved},
	{Name: "Nomad Travels", Email: "organizer3@example.com", Role: user.RoleOrganizer, Status: lifecycle.StatusPending},
	{Name: "Alice Wonderland", Email: "alice@example.com", Role: user.RoleCustomer, Status: lifecycle.StatusApproved},
	{Name: "Bob The Builder", Email: "bob@example.com", Role: user.RoleCustomer, Status: lifecycle.StatusApproved},
	{Name: "Charlie Brown", Email: "charlie@example.com", Role: user.RoleCustomer, Status: lifecycle.StatusPending},
}

type samplePackage struct {
	pkg tourpackage.NewPackage
	// organizer indexes the approved organizers.
	organizer int
}

var samplePackages = []samplePackage{
	{organizer: 0, pkg: tourpackage.NewPackage{
		Name:        "Mystical Bali Escape",
		Description: "Discover the spiritual heart of Bali, from lush rice paddies to ancient temples. Includes yoga retreats and cultural workshops.",
		Destination: "Bali, Indonesia",
		Duration:    7,
		Price:       money.MustParse("1299.99"),
		Status:      lifecycle.StatusApproved,
		ImageURL:    strp("https://images.unsplash.com/photo-1537996194471-e657df975ab4?auto=format&fit=crop&w=500&q=60"),
	}},
	{organizer: 1, pkg: tourpackage.NewPackage{
		Name:        "Parisian Romance Getaway",
		Description: "Experience the magic of Paris with guided tours of iconic landmarks, Seine river cruise, and charming Montmartre exploration.",
		Destination: "Paris, France",
		Duration:    5,
		Price:       money.MustParse("999.00"),
		Status:      lifecycle.StatusApproved,
		ImageURL:    strp("https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&w=500&q=60"),
	}},
	{organizer: 0, pkg: tourpackage.NewPackage{
		Name:        "Tokyo Tech & Tradition",
		Description: "Explore the vibrant contrast of Tokyo, from futuristic skyscrapers and tech hubs to serene gardens and historic shrines.",
		Destination: "Tokyo, Japan",
		Duration:    8,
		Price:       money.MustParse("1850.50"),
		Status:      lifecycle.StatusPending,
		ImageURL:    strp("https://images.unsplash.com/photo-1542051841857-5f90071e7989?auto=format&fit=crop&w=500&q=60"),
	}},
	{organizer: 1, pkg: tourpackage.NewPackage{
		Name:        "Safari Adventure in Kenya",
		Description: "Witness the Great Migration and spot the Big Five on an unforgettable safari journey through Kenya's national parks.",
		Destination: "Masai Mara, Kenya",
		Duration:    10,
		Price:       money.MustParse("2500.00"),
		Status:      lifecycle.StatusApproved,
		ImageURL:    strp("https://images.unsplash.com/photo-1534996380417-UR5505803987?auto=format&fit=crop&w=500&q=60"),
	}},
}

type sampleBooking struct {
	pkg, customer int // indexes into approved packages / approved customers
	travelers     int
	status        booking.PaymentStatus
}

var sampleBookings = []sampleBooking{
	{pkg: 0, customer: 0, travelers: 2, status: booking.PaymentPaid},
	{pkg: 1, customer: 1, travelers: 1, status: booking.PaymentPending},
	{pkg: 1, customer: 0, travelers: 1, status: booking.PaymentPaid},
}

func strp(s string) *string { return &s }

// Run seeds every sample record that is not already present. Users match by email,
// packages by name and organizer, bookings and reviews by user and package.
func Run(ctx context.Context, s Stores) (Counts, error) {
	var c Counts

	users, err := seedUsers(ctx, s.Users)
	if err != nil {
		return c, err
	}
	c.Users = len(users)

	var organizers, customers []user.User
	for _, u := range users {
		if !u.IsApproved() {
			continue
		}
		switch u.Role {
		case user.RoleOrganizer:
			organizers = append(organizers, u)
		case user.RoleCustomer:
			customers = append(customers, u)
		}
	}
	if len(organizers) < 2 {
		log.Printf("seed: not enough approved organizers, skipping packages")
		return c, nil
	}

	pkgs, err := seedPackages(ctx, s.Packages, organizers)
	if err != nil {
		return c, err
	}
	c.Packages = len(pkgs)

	var approved []tourpackage.Package
	for _, p := range pkgs {
		if p.Bookable() {
			approved = append(approved, p)
		}
	}
	if len(customers) < 2 || len(approved) < 2 {
		log.Printf("seed: not enough approved customers or packages, skipping bookings")
		return c, nil
	}

	paid, created, err := seedBookings(ctx, s.Bookings, approved, customers)
	if err != nil {
		return c, err
	}
	c.Bookings = created

	if len(paid) > 0 {
		b := paid[0]
		exists, err := s.Reviews.Exists(ctx, b.UserID, b.PackageID)
		if err != nil {
			return c, err
		}
		if !exists {
			comment := "Absolutely breathtaking! The yoga sessions were incredible, and the culture is so rich. Highly recommend!"
			if _, err := s.Reviews.Insert(ctx, review.NewReview{PackageID: b.PackageID, UserID: b.UserID, Rating: 5, Comment: &comment}); err != nil {
				return c, fmt.Errorf("seed review: %w", err)
			}
			c.Reviews++
		}
	}

	log.Printf("seed done users=%d packages=%d bookings=%d reviews=%d", c.Users, c.Packages, c.Bookings, c.Reviews)
	return c, nil
}

func seedUsers(ctx context.Context, store user.Store) ([]user.User, error) {
	out := make([]user.User, 0, len(sampleUsers))
	for _, nu := range sampleUsers {
		u, err := store.FindByEmail(ctx, nu.Email)
		if apperr.Is(err, apperr.KindNotFound) {
			u, err = store.Insert(ctx, nu)
		}
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", nu.Email, err)
		}
		out = append(out, *u)
	}
	return out, nil
}

func seedPackages(ctx context.Context, store tourpackage.Store, organizers []user.User) ([]tourpackage.Package, error) {
	out := make([]tourpackage.Package, 0, len(samplePackages))
	for _, sp := range samplePackages {
		np := sp.pkg
		np.OrganizerID = organizers[sp.organizer].ID
		np.Slug = tourpackage.Slugify(np.Name)

		existing, err := store.List(ctx, tourpackage.Filter{OrganizerID: np.OrganizerID})
		if err != nil {
			return nil, err
		}
		var found *tourpackage.Package
		for i := range existing {
			if existing[i].Name == np.Name {
				found = &existing[i]
				break
			}
		}
		if found == nil {
			found, err = store.Insert(ctx, np)
			if err != nil {
				return nil, fmt.Errorf("seed package %s: %w", np.Name, err)
			}
		}
		out = append(out, *found)
	}
	return out, nil
}

// seedBookings returns the paid sample bookings and how many bookings it created.
func seedBookings(ctx context.Context, store booking.Store, pkgs []tourpackage.Package, customers []user.User) ([]booking.Booking, int, error) {
	var paid []booking.Booking
	created := 0
	for _, sb := range sampleBookings {
		pkg := pkgs[sb.pkg]
		cust := customers[sb.customer]

		existing, err := store.List(ctx, booking.Filter{UserID: cust.ID, PackageID: pkg.ID})
		if err != nil {
			return nil, 0, err
		}
		if len(existing) > 0 {
			if existing[0].PaymentStatus == booking.PaymentPaid {
				paid = append(paid, existing[0])
			}
			continue
		}

		total, err := booking.Quote(pkg.Price, sb.travelers)
		if err != nil {
			return nil, 0, err
		}
		b, err := store.Insert(ctx, booking.NewBooking{
			PackageID:         pkg.ID,
			UserID:            cust.ID,
			NumberOfTravelers: sb.travelers,
			TotalPrice:        total,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("seed booking: %w", err)
		}
		created++

		if sb.status == booking.PaymentPaid {
			b, err = store.Settle(ctx, b.ID, nil, booking.PaymentPaid)
			if err != nil {
				return nil, 0, fmt.Errorf("seed booking payment: %w", err)
			}
			paid = append(paid, *b)
		}
	}
	return paid, created, nil
}
