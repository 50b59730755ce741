package review

import (
	"net/http"

	"tourmarket/internal/api"
)

type Handlers struct {
	Reviews *Service
}

// List serves GET /reviews?packageId=.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Reviews.List(r.Context(), r.URL.Query().Get("packageId"))
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
	rv, err := h.Reviews.Create(r.Context(), api.PrincipalFromContext(r.Context()), in)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, rv)
}
