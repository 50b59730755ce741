package tourpackage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourmarket/internal/apperr"
	"tourmarket/internal/lifecycle"
	"tourmarket/internal/money"
	"tourmarket/pkg/db"
)

// packageSelect reads from a relation aliased p, joined to its organizer.
const packageSelect = `
SELECT p.id::text, p.name, p.slug, p.description, p.destination, p.duration, p.price::text,
       p.organizer_id::text, p.status, p.image_url, p.created_at, p.updated_at,
       u.id IS NOT NULL, COALESCE(u.name, ''), COALESCE(u.email, '')
`

const fromPackages = `FROM packages p LEFT JOIN users u ON u.id = p.organizer_id`

// fromWritten joins the rows a data-modifying CTE named p returned.
const fromWritten = `FROM p LEFT JOIN users u ON u.id = p.organizer_id`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) List(ctx context.Context, f Filter) ([]Package, error) {
	var where []string
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.OrganizerID != "" {
		args = append(args, f.OrganizerID)
		where = append(where, fmt.Sprintf("p.organizer_id = $%d", len(args)))
	}

	q := packageSelect + fromPackages
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	out := []Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Package, error) {
	return onePackage(r.db.QueryRow(ctx, packageSelect+fromPackages+` WHERE p.id = $1`, id))
}

func (r *Repository) Insert(ctx context.Context, np NewPackage) (*Package, error) {
	q := `
WITH p AS (
  INSERT INTO packages (name, slug, description, destination, duration, price, organizer_id, status, image_url)
  VALUES ($1, $2, $3, $4, $5, CAST($6 AS NUMERIC), $7, $8, $9)
  RETURNING *
)` + packageSelect + fromWritten

	p, err := scanPackage(r.db.QueryRow(ctx, q,
		np.Name, np.Slug, np.Description, np.Destination, np.Duration, np.Price.SQL(),
		np.OrganizerID, string(np.Status), np.ImageURL,
	))
	if err != nil {
		if db.IsRangeViolation(err) {
			return nil, apperr.Wrap(apperr.KindValidation, "Validation Error creating package", err)
		}
		return nil, fmt.Errorf("insert package: %w", err)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, id string, c Changes) (*Package, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if c.Name != nil {
		add("name", *c.Name)
	}
	if c.Slug != nil {
		add("slug", *c.Slug)
	}
	if c.Description != nil {
		add("description", *c.Description)
	}
	if c.Destination != nil {
		add("destination", *c.Destination)
	}
	if c.Duration != nil {
		add("duration", *c.Duration)
	}
	if c.Price != nil {
		args = append(args, c.Price.SQL())
		set = append(set, fmt.Sprintf("price = CAST($%d AS NUMERIC)", len(args)))
	}
	if c.OrganizerID != nil {
		add("organizer_id", *c.OrganizerID)
	}
	if c.Status != nil {
		add("status", string(*c.Status))
	}
	if c.ImageURL != nil {
		if *c.ImageURL == "" {
			set = append(set, "image_url = NULL")
		} else {
			add("image_url", *c.ImageURL)
		}
	}

	q := `
WITH p AS (
  UPDATE packages SET ` + strings.Join(set, ", ") + `
  WHERE id = $1
  RETURNING *
)` + packageSelect + fromWritten

	p, err := onePackage(r.db.QueryRow(ctx, q, args...))
	if err != nil && db.IsRangeViolation(err) {
		return nil, apperr.Wrap(apperr.KindValidation, "Validation Error", err)
	}
	return p, err
}

func (r *Repository) SetStatus(ctx context.Context, id string, status lifecycle.Status) (*Package, error) {
	return r.Update(ctx, id, Changes{Status: &status})
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Package")
	}
	return nil
}

func onePackage(row pgx.Row) (*Package, error) {
	p, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Package")
		}
		if db.PgCode(err) != "" {
			return nil, err
		}
		return nil, fmt.Errorf("load package: %w", err)
	}
	return p, nil
}

func scanPackage(row pgx.Row) (*Package, error) {
	var p Package
	var price string
	if err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Destination, &p.Duration, &price,
		&p.OrganizerID, &p.Status, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&p.Organizer.Available, &p.Organizer.Name, &p.Organizer.Email,
	); err != nil {
		return nil, err
	}
	amt, err := money.Parse(price)
	if err != nil {
		return nil, err
	}
	p.Price = amt
	p.Organizer.ID = p.OrganizerID
	return &p, nil
}
