package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsUserFacing(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"validation", ErrValidation, true},
		{"forbidden", ErrForbidden, true},
		{"invalid state", ErrInvalidState, true},
		{"cap exceeded", ErrCapExceeded, true},
		{"unauthenticated", ErrUnauthenticated, true},
		{"not found", ErrNotFound, true},
		{"configuration", ErrConfiguration, false},
		{"provider", ErrProvider, false},
		{"plain error", errors.New("disk on fire"), false},
		{"wrapped sentinel", fmt.Errorf("%w: hours must be positive", ErrValidation), true},
		{"wrapped system error", fmt.Errorf("%w: distance API key missing", ErrConfiguration), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUserFacing(tc.err); got != tc.want {
				t.Errorf("IsUserFacing(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
