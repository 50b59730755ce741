package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourmarket/internal/actor"
	"tourmarket/internal/apperr"
	"tourmarket/internal/ids"
)

type lookupFunc func(ctx context.Context, id string) (*actor.Principal, error)

func (f lookupFunc) Principal(ctx context.Context, id string) (*actor.Principal, error) {
	return f(ctx, id)
}

func TestActingUser(t *testing.T) {
	known := ids.New()
	lookup := lookupFunc(func(_ context.Context, id string) (*actor.Principal, error) {
		if id == known {
			return &actor.Principal{UserID: id, Role: actor.RoleAdmin, Status: "approved"}, nil
		}
		return nil, apperr.NotFound("User")
	})

	var seen *actor.Principal
	h := ActingUser(lookup, "secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(set func(r *http.Request)) int {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		set(req)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(func(*http.Request) {}))
	assert.Nil(t, seen)

	assert.Equal(t, http.StatusOK, serve(func(r *http.Request) { r.Header.Set(HeaderActingUser, known) }))
	require.NotNil(t, seen)
	assert.Equal(t, known, seen.UserID)

	tok, err := IssueActorToken(known, actor.RoleAdmin, "secret", time.Minute, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }))
	require.NotNil(t, seen)

	assert.Equal(t, http.StatusUnauthorized, serve(func(r *http.Request) { r.Header.Set(HeaderActingUser, ids.New()) }))
	assert.Equal(t, http.StatusUnauthorized, serve(func(r *http.Request) { r.Header.Set(HeaderActingUser, "bob") }))
	assert.Equal(t, http.StatusUnauthorized, serve(func(r *http.Request) { r.Header.Set("Authorization", "Bearer junk") }))
}

func TestWriteAppError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.MissingField("x"), http.StatusBadRequest},
		{apperr.AlreadyPaid("x"), http.StatusBadRequest},
		{apperr.Forbidden("x"), http.StatusForbidden},
		{apperr.NotFound("Package"), http.StatusNotFound},
		{apperr.DuplicateKey("x"), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteAppError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Contains(t, rec.Body.String(), `"message"`)
	}
}

func TestWriteAppError_InternalDetailOnlyWhenAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WriteAppError(rec, req, errors.New("db down"))
	assert.NotContains(t, rec.Body.String(), "db down")

	rec = httptest.NewRecorder()
	ErrorDetail(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteAppError(w, r, errors.New("db down"))
	})).ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "db down")
}
