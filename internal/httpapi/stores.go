package httpapi

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"tourmarket/internal/actor"
	"tourmarket/internal/audit"
	"tourmarket/internal/booking"
	"tourmarket/internal/memstore"
	"tourmarket/internal/review"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
	"tourmarket/pkg/config"
)

type AuditLog interface {
	audit.Recorder
	audit.Reader
}

// Stores is the persistence the router wires into every workflow.
type Stores struct {
	Users    user.Store
	Packages tourpackage.Store
	Bookings booking.Store
	Reviews  review.Store
	Audit    AuditLog
}

func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:    user.NewRepository(pool),
		Packages: tourpackage.NewRepository(pool),
		Bookings: booking.NewRepository(pool),
		Reviews:  review.NewRepository(pool),
		Audit:    audit.NewRepository(pool),
	}
}

func MemoryStores(d *memstore.DB) Stores {
	return Stores{
		Users:    d.Users(),
		Packages: d.Packages(),
		Bookings: d.Bookings(),
		Reviews:  d.Reviews(),
		Audit:    d.Audit(),
	}
}

// Authorizer builds the authorizer for an AUTHZ_MODE value.
func Authorizer(mode string) actor.Authorizer {
	if mode == config.AuthzRole {
		return actor.RoleBased{}
	}
	return actor.Open{}
}
