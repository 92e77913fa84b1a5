// Package apperrors defines the application error taxonomy. Services return
// *Error values; handlers translate them to HTTP responses in one place.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal       Kind = iota // storage or unexpected failure
	KindValidation                 // missing or malformed input
	KindAuth                       // bad credentials or token
	KindForbidden                  // ownership violation
	KindNotFound                   // missing referenced record
	KindConflict                   // duplicate unique field
	KindUnavailable                // upstream AI transport/HTTP failure
	KindUpstreamFormat             // AI returned unparseable content
)

type Error struct {
	Kind    Kind
	Message string
	Err     error

	// Upstream carries the AI provider's error payload. Only set for
	// KindUnavailable; it is echoed in the response for diagnostics.
	Upstream any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }
func Forbidden(message string) *Error  { return New(KindForbidden, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

func Unavailable(message string, err error, upstream any) *Error {
	e := Wrap(KindUnavailable, message, err)
	e.Upstream = upstream
	return e
}

func UpstreamFormat(message string, err error) *Error {
	return Wrap(KindUpstreamFormat, message, err)
}

// KindOf extracts the error kind, defaulting to KindInternal for errors that
// did not originate in a service.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Status maps an error kind to its HTTP status code. Conflict maps to 400,
// matching the original API contract for duplicate signups.
func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
