package api

import (
	"context"
	"net/http"

	"tourmarket/internal/actor"
)

type ctxKey string

const (
	ctxKeyPrincipal   ctxKey = "principal"
	ctxKeyErrorDetail ctxKey = "error_detail"
)

func WithPrincipal(ctx context.Context, p *actor.Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the acting user, or nil for an anonymous request.
func PrincipalFromContext(ctx context.Context) *actor.Principal {
	v := ctx.Value(ctxKeyPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*actor.Principal)
	return p
}

func ErrorDetailAllowed(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyErrorDetail).(bool)
	return v
}

// ErrorDetail lets 500 responses carry the underlying error text (dev only).
func ErrorDetail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyErrorDetail, true)))
	})
}
