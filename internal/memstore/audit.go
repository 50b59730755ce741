package memstore

import (
	"context"

	"tourmarket/internal/audit"
	"tourmarket/internal/ids"
)

type AuditLog struct{ d *DB }

var (
	_ audit.Recorder = (*AuditLog)(nil)
	_ audit.Reader   = (*AuditLog)(nil)
)

func (s *AuditLog) Record(_ context.Context, e audit.Entry) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	e.ID = ids.New()
	e.CreatedAt = s.d.now()
	s.d.audit = append(s.d.audit, e)
	return nil
}

func (s *AuditLog) ListByEntity(_ context.Context, entityID string) ([]audit.Entry, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()

	out := []audit.Entry{}
	for _, e := range s.d.audit {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}
