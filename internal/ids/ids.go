package ids

import (
	"strings"

	"github.com/google/uuid"

	"tourmarket/internal/apperr"
)

// New returns a fresh random identifier.
func New() string {
	return uuid.NewString()
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// Parse normalizes s or returns an InvalidIdentifier error naming what was being parsed.
func Parse(what, s string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", apperr.InvalidIdentifier("invalid " + what + " id")
	}
	return u.String(), nil
}

// Require is Parse for values that must also be present.
func Require(what, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", apperr.MissingField(what + " id is required")
	}
	return Parse(what, s)
}
