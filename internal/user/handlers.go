package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourmarket/internal/api"
	"tourmarket/internal/lifecycle"
)

type Handlers struct {
	Users *Service
}

// List serves GET /users?status=&role=. Unknown filter values match nothing.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.Users.List(r.Context(), Filter{
		Status: lifecycle.Status(q.Get("status")),
		Role:   Role(q.Get("role")),
	})
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, items)
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := api.DecodeJSON(r, &in); err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	u, err := h.Users.Register(r.Context(), api.PrincipalFromContext(r.Context()), in)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, u)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, u)
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, lifecycle.TransitionApprove)
}

func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, lifecycle.TransitionReject)
}

func (h Handlers) transition(w http.ResponseWriter, r *http.Request, t lifecycle.Transition) {
	u, err := h.Users.Apply(r.Context(), api.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), t)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, u)
}
