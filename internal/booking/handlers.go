package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourmarket/internal/api"
)

type Handlers struct {
	Bookings *Service
}

// List serves GET /bookings?userId=&packageId=.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.Bookings.List(r.Context(), Filter{UserID: q.Get("userId"), PackageID: q.Get("packageId")})
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	b, err := h.Bookings.Create(r.Context(), api.PrincipalFromContext(r.Context()), in)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, b)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}
