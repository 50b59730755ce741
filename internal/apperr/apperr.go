// Package apperr defines the error kinds every workflow reports.
// Handlers map a Kind onto an HTTP status; nothing below the handler knows about HTTP.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindMissingField      Kind = "MISSING_FIELD"
	KindInvalidIdentifier Kind = "INVALID_IDENTIFIER"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidState      Kind = "INVALID_STATE"
	KindForbidden         Kind = "FORBIDDEN"
	KindDuplicateKey      Kind = "DUPLICATE_KEY"
	KindValidation        Kind = "VALIDATION_FAILED"
	KindInvalidRange      Kind = "INVALID_RANGE"
	KindAlreadyPaid       Kind = "ALREADY_PAID"
	KindInternal          Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	// Detail is an optional lower-level explanation (e.g. the driver error text).
	Detail string
	// Fields maps offending field names to the rule they broke.
	Fields map[string]string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches cause to a new error of the given kind.
func Wrap(kind Kind, message string, cause error) *Error {
	e := &Error{Kind: kind, Message: message, cause: cause}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

func MissingField(message string) *Error { return New(KindMissingField, message) }

func InvalidIdentifier(message string) *Error { return New(KindInvalidIdentifier, message) }

// NotFound builds "<resource> not found".
func NotFound(resource string) *Error { return New(KindNotFound, resource+" not found") }

func InvalidState(message string) *Error { return New(KindInvalidState, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func DuplicateKey(message string) *Error { return New(KindDuplicateKey, message) }

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func InvalidRange(message string) *Error { return New(KindInvalidRange, message) }

func AlreadyPaid(message string) *Error { return New(KindAlreadyPaid, message) }

func Internal(message string, cause error) *Error { return Wrap(KindInternal, message, cause) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
