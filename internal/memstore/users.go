package memstore

import (
	"context"

	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/user"
)

type Users struct{ d *DB }

var _ user.Store = (*Users)(nil)

func (s *Users) List(_ context.Context, f user.Filter) ([]user.User, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	out := []user.User{}
	for _, id := range s.d.userOrder {
		u := s.d.users[id]
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (s *Users) Get(_ context.Context, id string) (*user.User, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	u, ok := s.d.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	for _, u := range s.d.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *Users) Insert(_ context.Context, nu user.NewUser) (*user.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	for _, u := range s.d.users {
		if u.Email == nu.Email {
			return nil, apperr.DuplicateKey("Email already exists.")
		}
	}

	now := s.d.now()
	u := &user.User{
		ID:        ids.New(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		Status:    nu.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.d.users[u.ID] = u
	s.d.userOrder = append(s.d.userOrder, u.ID)
	cp := *u
	return &cp, nil
}

func (s *Users) SetStatus(_ context.Context, id string, status lifecycle.Status) (*user.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	u, ok := s.d.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	u.Status = status
	u.UpdatedAt = s.d.now()
	cp := *u
	return &cp, nil
}
