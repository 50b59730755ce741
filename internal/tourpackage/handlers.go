package tourpackage

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tourmarket/internal/api"
	"tourmarket/internal/apperr"
	"tourmarket/internal/lifecycle"
)

const maxPatchBody = 1 << 20

type Handlers struct {
	Packages *Service
}

// List serves GET /packages?status=&organizerId=.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.Packages.List(r.Context(), Filter{
		Status:      lifecycle.Status(q.Get("status")),
		OrganizerID: q.Get("organizerId"),
	})
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
	pkg, err := h.Packages.Create(r.Context(), api.PrincipalFromContext(r.Context()), in)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, pkg)
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.Packages.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, pkg)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPatchBody))
	if err != nil {
		api.WriteAppError(w, r, apperr.Wrap(apperr.KindValidation, "invalid body", err))
		return
	}
	patch, err := ParsePatch(body)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	pkg, err := h.Packages.Update(r.Context(), api.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, pkg)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Packages.Delete(r.Context(), api.PrincipalFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "Package deleted successfully"})
}

func (h Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, lifecycle.TransitionApprove)
}

func (h Handlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, lifecycle.TransitionReject)
}

func (h Handlers) transition(w http.ResponseWriter, r *http.Request, t lifecycle.Transition) {
	pkg, err := h.Packages.Apply(r.Context(), api.PrincipalFromContext(r.Context()), chi.URLParam(r, "id"), t)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, pkg)
}
