package memstore

import (
	"context"

	"tourmarket/internal/apperr"
	"tourmarket/internal/booking"
	"tourmarket/internal/ids"
)

type Bookings struct{ d *DB }

var _ booking.Store = (*Bookings)(nil)

func (s *Bookings) List(_ context.Context, f booking.Filter) ([]booking.Booking, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	out := []booking.Booking{}
	for i := len(s.d.bookingOrder) - 1; i >= 0; i-- {
		b := s.d.bookings[s.d.bookingOrder[i]]
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.PackageID != "" && b.PackageID != f.PackageID {
			continue
		}
		out = append(out, s.d.populateBooking(b))
	}
	return out, nil
}

func (s *Bookings) Get(_ context.Context, id string) (*booking.Booking, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	b, ok := s.d.bookings[id]
	if !ok {
		return nil, apperr.NotFound("Booking")
	}
	out := s.d.populateBooking(b)
	return &out, nil
}

func (s *Bookings) Insert(_ context.Context, nb booking.NewBooking) (*booking.Booking, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	now := s.d.now()
	b := &booking.Booking{
		ID:                ids.New(),
		PackageID:         nb.PackageID,
		UserID:            nb.UserID,
		BookingDate:       now,
		NumberOfTravelers: nb.NumberOfTravelers,
		TotalPrice:        nb.TotalPrice,
		PaymentStatus:     booking.PaymentPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.d.bookings[b.ID] = b
	s.d.bookingOrder = append(s.d.bookingOrder, b.ID)
	cp := *b
	return &cp, nil
}

// Settle holds the write lock across check and write.
func (s *Bookings) Settle(_ context.Context, id string, check booking.SettleCheck, next booking.PaymentStatus) (*booking.Booking, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	b, ok := s.d.bookings[id]
	if !ok {
		return nil, apperr.NotFound("Booking")
	}
	if check != nil {
		cur := *b
		if err := check(&cur); err != nil {
			return nil, err
		}
	}
	b.PaymentStatus = next
	b.UpdatedAt = s.d.now()
	out := s.d.populateBooking(b)
	return &out, nil
}

func (s *Bookings) HasPaidBooking(_ context.Context, userID, packageID string) (bool, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	for _, b := range s.d.bookings {
		if b.UserID == userID && b.PackageID == packageID && b.PaymentStatus == booking.PaymentPaid {
			return true, nil
		}
	}
	return false, nil
}

// populateBooking copies b and resolves its package and customer. Callers hold d.mu.
func (d *DB) populateBooking(b *booking.Booking) booking.Booking {
	out := *b
	pkg := &booking.PackageRef{ID: b.PackageID}
	if p, ok := d.packages[b.PackageID]; ok {
		price := p.Price
		pkg.Available = true
		pkg.Name = p.Name
		pkg.Destination = p.Destination
		pkg.Price = &price
	}
	usr := &booking.UserRef{ID: b.UserID}
	if u, ok := d.users[b.UserID]; ok {
		usr.Available = true
		usr.Name = u.Name
		usr.Email = u.Email
	}
	out.Package = pkg
	out.User = usr
	return out
}
