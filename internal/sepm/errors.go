package sepm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized marks 401/403 responses so callers can classify
	// credential problems separately from transport failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmptyToken is returned when the identity endpoint accepts the
	// credentials but returns no usable token.
	ErrEmptyToken = errors.New("identity endpoint returned an empty token")

	errUnexpectedStatus = errors.New("unexpected status code")
)

// IsAuthError reports whether err stems from rejected credentials or an
// expired session.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrEmptyToken)
}

func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %d", ErrUnauthorized, code)
	default:
		return fmt.Errorf("%w: %d", errUnexpectedStatus, code)
	}
}
