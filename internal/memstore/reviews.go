package memstore

import (
	"context"

	"tourmarket/internal/ids"
	"tourmarket/internal/review"
)

type Reviews struct{ d *DB }

var _ review.Store = (*Reviews)(nil)

func (s *Reviews) ListByPackage(_ context.Context, packageID string) ([]review.Review, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	out := []review.Review{}
	for i := len(s.d.reviewOrder) - 1; i >= 0; i-- {
		r := s.d.reviews[s.d.reviewOrder[i]]
		if r.PackageID != packageID {
			continue
		}
		cp := *r
		ref := &review.UserRef{ID: r.UserID}
		if u, ok := s.d.users[r.UserID]; ok {
			ref.Available = true
			ref.Name = u.Name
		}
		cp.User = ref
		out = append(out, cp)
	}
	return out, nil
}

func (s *Reviews) Insert(_ context.Context, nr review.NewReview) (*review.Review, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	now := s.d.now()
	r := &review.Review{
		ID:         ids.New(),
		PackageID:  nr.PackageID,
		UserID:     nr.UserID,
		Rating:     nr.Rating,
		Comment:    nr.Comment,
		ReviewDate: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.d.reviews[r.ID] = r
	s.d.reviewOrder = append(s.d.reviewOrder, r.ID)
	cp := *r
	return &cp, nil
}

func (s *Reviews) Exists(_ context.Context, userID, packageID string) (bool, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	for _, r := range s.d.reviews {
		if r.UserID == userID && r.PackageID == packageID {
			return true, nil
		}
	}
	return false, nil
}
