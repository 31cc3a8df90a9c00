package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the domain taxonomy. Handlers map these to HTTP
// statuses with Status below; anything unrecognized is a 500.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// ValidationError carries a caller-facing message about malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Status maps a domain error to its HTTP status code.
// Ownership is never disclosed: a record owned by someone else surfaces
// as ErrNotFound, so there is deliberately no Forbidden mapping.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err. Unexpected errors get
// a generic message so internal detail never leaks to the client.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
