package apperr

import (
	"errors"
)

// Business-rule failures are returned as wrapped sentinels so callers can
// branch with errors.Is without parsing messages. ErrConfiguration and
// ErrProvider are system-side: handlers surface a generic message for them
// and log the detail, while the others carry actionable user-facing text.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrValidation      = errors.New("validation failed")
	ErrCapExceeded     = errors.New("cap exceeded")
	ErrConfiguration   = errors.New("configuration missing")
	ErrProvider        = errors.New("provider failure")
	ErrNotFound        = errors.New("not found")
)

// IsUserFacing reports whether the error's message is safe to return to the
// caller verbatim.
func IsUserFacing(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrCapExceeded),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrNotFound):
		return true
	}
	return false
}
