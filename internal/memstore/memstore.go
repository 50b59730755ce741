// Package memstore keeps every resource in process memory behind one mutex. It
// mirrors the Postgres repositories: unique emails, weak references resolved on
// read, and atomic booking settlement.
package memstore

import (
	"sync"
	"time"

	"tourmarket/internal/audit"
	"tourmarket/internal/booking"
	"tourmarket/internal/review"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
)

type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[string]*user.User
	userOrder []string

	packages     map[string]*tourpackage.Package
	packageOrder []string

	bookings     map[string]*booking.Booking
	bookingOrder []string

	reviews     map[string]*review.Review
	reviewOrder []string

	audit []audit.Entry
}

func New() *DB {
	return &DB{
		now:      func() time.Time { return time.Now().UTC() },
		users:    map[string]*user.User{},
		packages: map[string]*tourpackage.Package{},
		bookings: map[string]*booking.Booking{},
		reviews:  map[string]*review.Review{},
	}
}

func (d *DB) Users() *Users       { return &Users{d: d} }
func (d *DB) Packages() *Packages { return &Packages{d: d} }
func (d *DB) Bookings() *Bookings { return &Bookings{d: d} }
func (d *DB) Reviews() *Reviews   { return &Reviews{d: d} }
func (d *DB) Audit() *AuditLog    { return &AuditLog{d: d} }

func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}
