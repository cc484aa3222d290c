package pkg

import (
	"errors"
	"fmt"
)

// ErrJWKSNotConfigured means the Clerk JWKS endpoint is missing from the
// configuration. Operator-facing; never mapped to a 401.
var ErrJWKSNotConfigured = errors.New("CLERK_JWKS_URL is not configured")

// KeyFetchError wraps a failed or malformed JWKS fetch.
type KeyFetchError struct {
	Err error
}

func (slf *KeyFetchError) Error() string {
	return fmt.Sprintf("Failed to fetch JWKS: %v", slf.Err)
}

func (slf *KeyFetchError) Unwrap() error {
	return slf.Err
}

// InvalidTokenError covers every token rejection: empty token, missing or
// unknown key id, bad signature, expiry, issuer mismatch.
type InvalidTokenError struct {
	Reason string
}

func (slf *InvalidTokenError) Error() string {
	return "Invalid token: " + slf.Reason
}
