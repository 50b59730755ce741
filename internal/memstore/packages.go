package memstore

import (
	"context"

	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/tourpackage"
)

type Packages struct{ d *DB }

var _ tourpackage.Store = (*Packages)(nil)

func (s *Packages) List(_ context.Context, f tourpackage.Filter) ([]tourpackage.Package, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	out := []tourpackage.Package{}
	for i := len(s.d.packageOrder) - 1; i >= 0; i-- {
		p := s.d.packages[s.d.packageOrder[i]]
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.OrganizerID != "" && p.OrganizerID != f.OrganizerID {
			continue
		}
		out = append(out, s.d.populatePackage(p))
	}
	return out, nil
}

func (s *Packages) Get(_ context.Context, id string) (*tourpackage.Package, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	p, ok := s.d.packages[id]
	if !ok {
		return nil, apperr.NotFound("Package")
	}
	out := s.d.populatePackage(p)
	return &out, nil
}

func (s *Packages) Insert(_ context.Context, np tourpackage.NewPackage) (*tourpackage.Package, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	now := s.d.now()
	p := &tourpackage.Package{
		ID:          ids.New(),
		Name:        np.Name,
		Slug:        np.Slug,
		Description: np.Description,
		Destination: np.Destination,
		Duration:    np.Duration,
		Price:       np.Price,
		OrganizerID: np.OrganizerID,
		Status:      np.Status,
		ImageURL:    np.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.d.packages[p.ID] = p
	s.d.packageOrder = append(s.d.packageOrder, p.ID)
	out := s.d.populatePackage(p)
	return &out, nil
}

func (s *Packages) Update(_ context.Context, id string, c tourpackage.Changes) (*tourpackage.Package, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.d.packages[id]
	if !ok {
		return nil, apperr.NotFound("Package")
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Slug != nil {
		p.Slug = *c.Slug
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Destination != nil {
		p.Destination = *c.Destination
	}
	if c.Duration != nil {
		p.Duration = *c.Duration
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.OrganizerID != nil {
		p.OrganizerID = *c.OrganizerID
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if c.ImageURL != nil {
		if *c.ImageURL == "" {
			p.ImageURL = nil
		} else {
			img := *c.ImageURL
			p.ImageURL = &img
		}
	}
	p.UpdatedAt = s.d.now()
	out := s.d.populatePackage(p)
	return &out, nil
}

func (s *Packages) SetStatus(ctx context.Context, id string, status lifecycle.Status) (*tourpackage.Package, error) {
	return s.Update(ctx, id, tourpackage.Changes{Status: &status})
}

func (s *Packages) Delete(_ context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.packages[id]; !ok {
		return apperr.NotFound("Package")
	}
	delete(s.d.packages, id)
	s.d.packageOrder = remove(s.d.packageOrder, id)
	return nil
}

// populatePackage copies p and resolves its organizer. Callers hold d.mu.
func (d *DB) populatePackage(p *tourpackage.Package) tourpackage.Package {
	out := *p
	out.Organizer = tourpackage.Organizer{ID: p.OrganizerID}
	if u, ok := d.users[p.OrganizerID]; ok {
		out.Organizer.Available = true
		out.Organizer.Name = u.Name
		out.Organizer.Email = u.Email
	}
	return out
}
