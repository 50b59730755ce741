package review

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourmarket/internal/apperr"
	"tourmarket/pkg/db"
)

const reviewColumns = `r.id::text, r.package_id::text, r.user_id::text, r.rating, r.comment, r.review_date, r.created_at, r.updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) ListByPackage(ctx context.Context, packageID string) ([]Review, error) {
	const q = `
SELECT ` + reviewColumns + `, u.id IS NOT NULL, COALESCE(u.name, '')
FROM reviews r
LEFT JOIN users u ON u.id = r.user_id
WHERE r.package_id = $1
ORDER BY r.review_date DESC
`
	rows, err := r.db.Query(ctx, q, packageID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rv Review
		ref := UserRef{}
		if err := rows.Scan(&rv.ID, &rv.PackageID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.ReviewDate,
			&rv.CreatedAt, &rv.UpdatedAt, &ref.Available, &ref.Name); err != nil {
			return nil, err
		}
		ref.ID = rv.UserID
		rv.User = &ref
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, nr NewReview) (*Review, error) {
	const q = `
INSERT INTO reviews AS r (package_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING ` + reviewColumns
	rv, err := scanReview(r.db.QueryRow(ctx, q, nr.PackageID, nr.UserID, nr.Rating, nr.Comment))
	if err != nil {
		if db.IsRangeViolation(err) {
			return nil, apperr.Wrap(apperr.KindValidation, "Validation Error creating review", err)
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *Repository) Exists(ctx context.Context, userID, packageID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM reviews WHERE user_id = $1 AND package_id = $2)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, userID, packageID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return ok, nil
}

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	if err := row.Scan(&rv.ID, &rv.PackageID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.ReviewDate,
		&rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}
