package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
)

// HeaderActingUser selects the acting user explicitly by id.
const HeaderActingUser = "X-Acting-User"

type PrincipalLookup interface {
	Principal(ctx context.Context, userID string) (*actor.Principal, error)
}

// ActingUser resolves the principal a request acts as and attaches it to the context.
//
// Sources, in order:
// - Authorization: Bearer <token> signed with tokenSecret (sub = user id)
// - X-Acting-User: <user id>
//
// Requests with neither proceed anonymously; whether that is enough is the Authorizer's call.
func ActingUser(users PrincipalLookup, tokenSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := ""
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				sub, err := VerifyActorToken(strings.TrimSpace(authz[7:]), tokenSecret, time.Now())
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid acting-user token")
					return
				}
				userID = sub
			} else {
				userID = strings.TrimSpace(r.Header.Get(HeaderActingUser))
			}

			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !ids.Valid(userID) {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid acting user")
				return
			}

			p, err := users.Principal(r.Context(), userID)
			if err != nil {
				if apperr.Is(err, apperr.KindNotFound) {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown acting user")
					return
				}
				WriteAppError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
