package domain

import (
	"github.com/allisson/courses/internal/errors"
)

// Authentication errors. All token verification failures map to ErrUnauthorized
// so the HTTP layer can let the request proceed anonymously and defer the final
// rejection to the coarse authorization gate.
var (
	// ErrInvalidCredentials indicates a bad username/password pair at login.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates a token that is unknown, malformed or expired (opaque mode).
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrTokenExpired indicates a signed token presented at or after its expiry instant.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrInvalidSignature indicates a signed token whose signature does not verify.
	ErrInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrNotRevocable indicates an invalidation attempt in jwt mode, where
	// issued tokens remain valid until expiry. This is the accepted stateless
	// tradeoff of self-contained tokens, not a fault.
	ErrNotRevocable = errors.Wrap(errors.ErrConflict, "signed tokens cannot be revoked before expiry")
)
