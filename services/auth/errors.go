package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the usecase layer. Handlers map
// ErrUserNotFound and ErrInvalidOtp to the same client-facing response
// so the API never reveals whether an identifier is registered.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidOtp          = errors.New("invalid or expired otp")
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")
)

// RateLimitedError is returned when an action exceeds its attempt
// budget. RetryAfter is the remaining cooldown in seconds.
type RateLimitedError struct {
	RetryAfter int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}

// ProviderAssertionError wraps a failure to obtain or validate an
// identity assertion from an OAuth provider.
type ProviderAssertionError struct {
	Provider string
	Err      error
}

func (e *ProviderAssertionError) Error() string {
	return fmt.Sprintf("provider %s assertion failed: %v", e.Provider, e.Err)
}

func (e *ProviderAssertionError) Unwrap() error {
	return e.Err
}
