package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

var (
	_ Recorder = (*Repository)(nil)
	_ Reader   = (*Repository)(nil)
)

// Execer is satisfied by *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Insert writes e through q, so callers holding a transaction can log inside it.
func Insert(ctx context.Context, q Execer, e Entry) error {
	var s *string
	if e.Metadata != nil {
		b, _ := json.Marshal(e.Metadata)
		str := string(b)
		s = &str
	}
	const stmt = `
INSERT INTO audit_logs (entity_kind, entity_id, action, actor, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	if _, err := q.Exec(ctx, stmt, e.EntityKind, e.EntityID, e.Action, e.Actor, s); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *Repository) Record(ctx context.Context, e Entry) error {
	return Insert(ctx, r.db, e)
}

func (r *Repository) ListByEntity(ctx context.Context, entityID string) ([]Entry, error) {
	const q = `
SELECT id::text, entity_kind, entity_id::text, action, actor, COALESCE(metadata, '{}'::jsonb), created_at
FROM audit_logs
WHERE entity_id = $1
ORDER BY created_at ASC
`
	rows, err := r.db.Query(ctx, q, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var raw []byte
		if err := rows.Scan(&e.ID, &e.EntityKind, &e.EntityID, &e.Action, &e.Actor, &raw, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &e.Metadata)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
