package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourmarket/internal/apperr"
	"tourmarket/internal/lifecycle"
	"tourmarket/pkg/db"
)

const userColumns = `id::text, name, email, role, status, created_at, updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) List(ctx context.Context, f Filter) ([]User, error) {
	var where []string
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Role != "" {
		args = append(args, string(f.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}

	q := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return oneUser(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return oneUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) Insert(ctx context.Context, nu NewUser) (*User, error) {
	q := `
INSERT INTO users (name, email, role, status)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, q, nu.Name, nu.Email, string(nu.Role), string(nu.Status)))
	if err != nil {
		switch db.PgCode(err) {
		case db.CodeUniqueViolation:
			return nil, apperr.Wrap(apperr.KindDuplicateKey, "Email already exists.", err)
		case db.CodeCheckViolation:
			return nil, apperr.Wrap(apperr.KindValidation, "Validation Error creating user", err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status lifecycle.Status) (*User, error) {
	q := `
UPDATE users
SET status = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + userColumns
	return oneUser(r.db.QueryRow(ctx, q, id, string(status)))
}

func oneUser(row pgx.Row) (*User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
