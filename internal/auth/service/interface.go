// Package service provides technical services for authentication operations.
//
// This package implements reusable services for password hashing, opaque token
// generation and self-contained signed token handling using industry-standard
// cryptographic practices.
package service

import (
	authDomain "github.com/allisson/courses/internal/auth/domain"
)

// PasswordService defines operations for credential hashing and validation.
// Implementations must use industry-standard hashing algorithms (e.g., argon2id)
// with constant-time comparison to prevent timing attacks.
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, error error)

	// ComparePassword compares a plain text password against a stored hash.
	// Returns true if the password matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService defines operations for opaque token generation and hashing.
// Implementations must use cryptographically secure random generation and
// fast hashing algorithms suitable for short-lived tokens (e.g., SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (to be shared with the user) and
	// the hashed version (to be stored on the user record).
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	// Used for token validation by comparing hashes.
	HashToken(plainToken string) string
}

// JWTService defines operations for signing and verifying self-contained tokens.
// Implementations sign a claim set with a pre-provisioned symmetric secret and
// verify presented tokens without any server-side storage.
type JWTService interface {
	// Sign produces a compact signed token carrying the given claims.
	Sign(claims *authDomain.Claims) (string, error)

	// Verify checks the signature and expiry of a compact signed token and
	// returns its claims. Returns ErrInvalidSignature, ErrTokenExpired or
	// ErrInvalidToken on failure.
	Verify(signedToken string) (*authDomain.Claims, error)
}
