package seed

import (
	"net/http"

	"tourmarket/internal/api"
	"tourmarket/internal/apperr"
)

type Handlers struct {
	Stores Stores
}

type Response struct {
	Message      string `json:"message"`
	SeededCounts Counts `json:"seededCounts"`
}

// SeedAll serves GET /dev/seed-all.
func (h Handlers) SeedAll(w http.ResponseWriter, r *http.Request) {
	c, err := Run(r.Context(), h.Stores)
	if err != nil {
		api.WriteAppError(w, r, apperr.Internal("Error seeding database", err))
		return
	}
	api.WriteJSON(w, http.StatusOK, Response{
		Message:      "Database seeded successfully with users, packages, bookings, and reviews!",
		SeededCounts: c,
	})
}
