package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tourmarket/internal/api"
	"tourmarket/internal/audit"
	"tourmarket/internal/booking"
	"tourmarket/internal/payment"
	"tourmarket/internal/review"
	"tourmarket/internal/seed"
	"tourmarket/internal/tourpackage"
	"tourmarket/internal/user"
	"tourmarket/pkg/config"
)

type Dependencies struct {
	Cfg    config.Config
	Stores Stores
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	st := deps.Stores
	authz := Authorizer(deps.Cfg.AuthzMode)

	userSvc := user.NewService(st.Users, authz, st.Audit)
	packageSvc := tourpackage.NewService(st.Packages, st.Users, authz, st.Audit)
	bookingSvc := booking.NewService(st.Bookings, st.Packages, st.Users, authz, st.Audit)
	paymentSvc := payment.NewService(st.Bookings, authz, st.Audit)
	reviewSvc := review.NewService(st.Reviews, st.Bookings, review.Policy{
		RequirePaidBooking: deps.Cfg.Review.RequirePaidBooking,
		OnePerPackage:      deps.Cfg.Review.OnePerPackage,
	}, authz, st.Audit)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if !deps.Cfg.IsProd() {
		r.Use(api.ErrorDetail)
	}
	// Browser-rendered pages call the API from their own origin.
	r.Use(api.CORSMiddleware(api.CORSOptions{
		AllowedOrigins: deps.Cfg.AllowedOrigins,
		MaxAgeSeconds:  600,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(api.ActingUser(userSvc, deps.Cfg.ActorTokenSecret))

		users := user.Handlers{Users: userSvc}
		r.Get("/users", users.List)
		r.Post("/users", users.Create)
		r.Get("/users/{id}", users.Get)
		r.Patch("/users/{id}/approve", users.Approve)
		r.Patch("/users/{id}/reject", users.Reject)

		packages := tourpackage.Handlers{Packages: packageSvc}
		r.Get("/packages", packages.List)
		r.Post("/packages", packages.Create)
		r.Get("/packages/{id}", packages.Get)
		r.Put("/packages/{id}", packages.Update)
		r.Delete("/packages/{id}", packages.Delete)
		r.Patch("/packages/{id}/approve", packages.Approve)
		r.Patch("/packages/{id}/reject", packages.Reject)

		bookings := booking.Handlers{Bookings: bookingSvc}
		r.Get("/bookings", bookings.List)
		r.Post("/bookings", bookings.Create)
		r.Get("/bookings/{id}", bookings.Get)

		payments := payment.Handlers{Payments: paymentSvc}
		r.Post("/payments", payments.Pay)

		reviews := review.Handlers{Reviews: reviewSvc}
		r.Get("/reviews", reviews.List)
		r.Post("/reviews", reviews.Create)

		auditLog := audit.Handlers{Log: st.Audit, Authz: authz}
		r.Get("/audit", auditLog.List)
	})

	// Dev tooling
	if !deps.Cfg.IsProd() {
		seeder := seed.Handlers{Stores: seed.Stores{
			Users:    st.Users,
			Packages: st.Packages,
			Bookings: st.Bookings,
			Reviews:  st.Reviews,
		}}
		r.Get("/dev/seed-all", seeder.SeedAll)
	}

	return r
}
