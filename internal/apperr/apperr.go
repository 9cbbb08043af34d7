package apperr

import (
	"errors"
	"net/http"
)

// Kind is the machine-readable error code surfaced to callers
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindValidation      Kind = "VALIDATION_ERROR"
)

// Error is a call-terminal failure with a client-safe message. The wrapped
// cause stays server-side; only Kind and Message cross the wire.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Unauthenticated means no resolvable session on a non-public procedure
func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

// Forbidden means a resolvable session with insufficient role or a failed
// ownership check
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound means the target record is absent
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation means the input failed its schema
func Validation(message string, cause error) *Error {
	return &Error{Kind: KindValidation, Message: message, cause: cause}
}

// As unwraps err to an *Error if one is in its chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// HTTPStatus maps an error kind to its transport status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
