// Package apperr defines the error taxonomy shared by every marketplace
// operation. Services return *Error values; the HTTP layer maps the kind to a
// status code and a stable machine-readable body, never leaking internal
// detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the boundary.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Error carries a kind, a human-readable message and, for validation
// failures, per-field violations.
type Error struct {
	Kind       Kind
	Msg        string
	Violations map[string]string
	// Err is the wrapped cause, logged server-side only.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an error of the given kind.
func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Validation builds a validation error with field violations.
func Validation(violations map[string]string) *Error {
	return &Error{Kind: KindValidation, Msg: "validation failed", Violations: violations}
}

// Internal wraps an unexpected failure. The cause is kept for logs; the
// message shown to clients stays generic.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the kind from any error, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to its boundary status code. Forbidden maps to 404
// so a caller probing another company's resources cannot tell them apart
// from absent ones.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden, KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WireKind is the kind written in the response body. Forbidden is reported
// as not_found for the same anti-enumeration reason as HTTPStatus.
func WireKind(kind Kind) Kind {
	if kind == KindForbidden {
		return KindNotFound
	}
	return kind
}
