// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// UserRepository defines the persistence operations the token lifecycle needs.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// GetByUsername retrieves a user by username with roles loaded. The lookup
	// is case-insensitive. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)

	// GetByTokenHash retrieves the user holding an active opaque token with the
	// given hash. Only a token whose stored expiry is in the future matches.
	// Returns ErrUserNotFound if no such user exists.
	GetByTokenHash(ctx context.Context, tokenHash string) (*userDomain.User, error)

	// UpdateToken stores a new opaque token hash and expiry on the user record,
	// overwriting any previous pair in a single atomic update.
	UpdateToken(ctx context.Context, user *userDomain.User) error

	// ClearToken removes the active opaque token pair from the user record.
	ClearToken(ctx context.Context, user *userDomain.User) error
}

// TokenUseCase defines the token lifecycle: issuance against credentials,
// verification of presented tokens and invalidation. Two implementations
// exist, selected by configuration: opaque server-stored tokens and
// self-contained signed tokens.
type TokenUseCase interface {
	// Issue authenticates the credentials and produces a new access token.
	//
	// Returns ErrInvalidCredentials for both unknown usernames and wrong
	// passwords so callers cannot enumerate accounts. The plain token is only
	// returned once; in opaque mode issuing a new token invalidates the
	// previous one.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Verify validates a presented access token and resolves the identity it
	// authenticates. Returns an ErrUnauthorized-wrapped error for unknown,
	// malformed, expired or invalidated tokens.
	Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error)

	// Invalidate revokes the caller's active token. In jwt mode issued tokens
	// cannot be revoked and ErrNotRevocable is returned.
	Invalidate(ctx context.Context, identity *authDomain.Identity) error
}
