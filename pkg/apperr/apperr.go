package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories the service can return.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindBadRequest
	KindInternal
)

// Error carries an error kind plus a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error with a formatted message.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Unauthorized returns an unauthorized error with a formatted message.
func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

// Forbidden returns a forbidden error with a formatted message.
func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

// BadRequest returns a bad-request error with a formatted message.
func BadRequest(format string, args ...interface{}) *Error {
	return newError(KindBadRequest, format, args...)
}

// Internal wraps an unexpected failure so it never crosses the boundary raw.
func Internal(format string, args ...interface{}) *Error {
	return newError(KindInternal, format, args...)
}

// KindOf extracts the kind from an error chain. Unrecognized errors are
// reported as internal failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to its HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
