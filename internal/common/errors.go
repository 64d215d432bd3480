package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the closed set of failure tags surfaced to callers. Handlers emit
// the kind as the `errorType` field of the error body so clients can branch
// on it instead of parsing message strings.
type Kind string

const (
	KindNameRequired      Kind = "NAME_REQUIRED"
	KindEmailRequired     Kind = "EMAIL_REQUIRED"
	KindEmailInvalid      Kind = "EMAIL_INVALID"
	KindPasswordRequired  Kind = "PASSWORD_REQUIRED"
	KindPasswordTooShort  Kind = "PASSWORD_TOO_SHORT"
	KindEmailExists       Kind = "EMAIL_EXISTS"
	KindMissingFields     Kind = "MISSING_FIELDS"
	KindValidationFailed  Kind = "VALIDATION_FAILED"
	KindInvalidCreds      Kind = "INVALID_CREDENTIALS"
	KindMissingToken      Kind = "MISSING_TOKEN"
	KindInvalidToken      Kind = "INVALID_TOKEN"
	KindForbidden         Kind = "FORBIDDEN"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidTransition Kind = "INVALID_STATE_TRANSITION"
	KindUpstreamStorage   Kind = "UPSTREAM_STORAGE_FAILURE"
	KindInternal          Kind = "INTERNAL"
)

// Error is the single tagged error type used across services and handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match two tagged errors by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// E builds a tagged error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapE tags an underlying error without leaking it to the caller's body.
func WrapE(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the tag from err, defaulting to INTERNAL so storage and
// other infrastructure failures never leak internals to the caller.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "An unexpected server error occurred. Please try again later."
}

// HTTPStatusFromError maps tagged errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch KindOf(err) {
	case KindNameRequired, KindEmailRequired, KindEmailInvalid,
		KindPasswordRequired, KindPasswordTooShort, KindEmailExists,
		KindMissingFields, KindValidationFailed:
		return http.StatusBadRequest
	case KindInvalidCreds, KindMissingToken:
		return http.StatusUnauthorized
	case KindInvalidToken, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidTransition:
		return http.StatusConflict
	case KindUpstreamStorage:
		return http.StatusInternalServerError
	}

	// Check for pgx specific errors (example for unique constraint)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
