package api

import (
	"encoding/json"
	"log"
	"net/http"

	"tourmarket/internal/apperr"
)

type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeEnvelope(w, status, ErrorEnvelope{Code: code, Message: message})
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindMissingField, apperr.KindInvalidIdentifier, apperr.KindInvalidState,
		apperr.KindValidation, apperr.KindInvalidRange, apperr.KindAlreadyPaid:
		return http.StatusBadRequest
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders err using its apperr kind. Errors outside the taxonomy are
// internal: they are logged, and their text is only sent when the request allows detail.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		log.Printf("request failed method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		env := ErrorEnvelope{Code: string(apperr.KindInternal), Message: "internal error"}
		if ok && e.Message != "" {
			env.Message = e.Message
		}
		if ErrorDetailAllowed(r.Context()) {
			env.Error = err.Error()
		}
		writeEnvelope(w, http.StatusInternalServerError, env)
		return
	}

	writeEnvelope(w, StatusFor(e.Kind), ErrorEnvelope{
		Message: e.Message,
		Code:    string(e.Kind),
		Error:   e.Detail,
		Errors:  e.Fields,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env ErrorEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
