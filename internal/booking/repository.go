package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourmarket/internal/apperr"
	"tourmarket/internal/money"
	"tourmarket/pkg/db"
)

const bookingColumns = `b.id::text, b.package_id::text, b.user_id::text, b.booking_date, b.number_of_travelers,
       b.total_price::text, b.payment_status, b.created_at, b.updated_at`

const populatedSelect = `
SELECT ` + bookingColumns + `,
       p.id IS NOT NULL, COALESCE(p.name, ''), COALESCE(p.destination, ''), COALESCE(p.price::text, '0'),
       u.id IS NOT NULL, COALESCE(u.name, ''), COALESCE(u.email, '')
FROM bookings b
LEFT JOIN packages p ON p.id = b.package_id
LEFT JOIN users u ON u.id = b.user_id
`

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

func (r *Repository) List(ctx context.Context, f Filter) ([]Booking, error) {
	var where []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("b.user_id = $%d", len(args)))
	}
	if f.PackageID != "" {
		args = append(args, f.PackageID)
		where = append(where, fmt.Sprintf("b.package_id = $%d", len(args)))
	}

	q := populatedSelect
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY b.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanPopulated(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (*Booking, error) {
	return getPopulated(ctx, r.db, id)
}

func (r *Repository) Insert(ctx context.Context, nb NewBooking) (*Booking, error) {
	q := `
INSERT INTO bookings AS b (package_id, user_id, number_of_travelers, total_price, payment_status)
VALUES ($1, $2, $3, CAST($4 AS NUMERIC), $5)
RETURNING ` + bookingColumns

	b, err := scanBooking(r.db.QueryRow(ctx, q, nb.PackageID, nb.UserID, nb.NumberOfTravelers, nb.TotalPrice.SQL(), string(PaymentPending)))
	if err != nil {
		if db.IsRangeViolation(err) {
			return nil, apperr.Wrap(apperr.KindValidation, "Validation Error creating booking", err)
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

// Settle locks the row with SELECT ... FOR UPDATE so a second concurrent settle
// sees the first one's write.
func (r *Repository) Settle(ctx context.Context, id string, check SettleCheck, next PaymentStatus) (*Booking, error) {
	var out *Booking
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const lockQ = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 FOR UPDATE`
		cur, err := scanBooking(tx.QueryRow(ctx, lockQ, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Booking")
			}
			return fmt.Errorf("lock booking: %w", err)
		}
		if check != nil {
			if err := check(cur); err != nil {
				return err
			}
		}

		const updQ = `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`
		if _, err := tx.Exec(ctx, updQ, id, string(next)); err != nil {
			return fmt.Errorf("settle booking: %w", err)
		}

		out, err = getPopulated(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) HasPaidBooking(ctx context.Context, userID, packageID string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE user_id = $1 AND package_id = $2 AND payment_status = $3
)
`
	var ok bool
	if err := r.db.QueryRow(ctx, q, userID, packageID, string(PaymentPaid)).Scan(&ok); err != nil {
		return false, fmt.Errorf("check paid booking: %w", err)
	}
	return ok, nil
}

func getPopulated(ctx context.Context, q querier, id string) (*Booking, error) {
	b, err := scanPopulated(q.QueryRow(ctx, populatedSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Booking")
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var total string
	if err := row.Scan(&b.ID, &b.PackageID, &b.UserID, &b.BookingDate, &b.NumberOfTravelers,
		&total, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	amt, err := money.Parse(total)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = amt
	return &b, nil
}

func scanPopulated(row pgx.Row) (*Booking, error) {
	var b Booking
	var total, price string
	pkg := PackageRef{}
	usr := UserRef{}
	if err := row.Scan(&b.ID, &b.PackageID, &b.UserID, &b.BookingDate, &b.NumberOfTravelers,
		&total, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
		&pkg.Available, &pkg.Name, &pkg.Destination, &price,
		&usr.Available, &usr.Name, &usr.Email,
	); err != nil {
		return nil, err
	}

	amt, err := money.Parse(total)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = amt

	pkg.ID = b.PackageID
	if pkg.Available {
		p, err := money.Parse(price)
		if err != nil {
			return nil, err
		}
		pkg.Price = &p
	}
	usr.ID = b.UserID
	b.Package = &pkg
	b.User = &usr
	return &b, nil
}
