package audit

import (
	"net/http"

	"tourmarket/internal/actor"
	"tourmarket/internal/api"
	"tourmarket/internal/ids"
)

type Handlers struct {
	Log   Reader
	Authz actor.Authorizer
}

// List serves GET /audit?entityId=.
func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	entityID, err := ids.Require("entity", r.URL.Query().Get("entityId"))
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	if h.Authz != nil {
		if err := h.Authz.Authorize(r.Context(), api.PrincipalFromContext(r.Context()), actor.CapAuditRead, ""); err != nil {
			api.WriteAppError(w, r, err)
			return
		}
	}

	entries, err := h.Log.ListByEntity(r.Context(), entityID)
	if err != nil {
		api.WriteAppError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, entries)
}
