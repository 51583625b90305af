// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	authService "github.com/allisson/courses/internal/auth/service"
	"github.com/allisson/courses/internal/config"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// opaqueTokenUseCase implements TokenUseCase with random server-stored tokens.
// The token hash and expiry live on the user record, so each user holds at
// most one valid token at a time and issuance invalidates the previous token.
type opaqueTokenUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// Issue authenticates the credentials and generates a new opaque token.
//
// Security Notes:
//   - Returns ErrInvalidCredentials for both unknown usernames and wrong
//     passwords to prevent account enumeration
//   - The plain token is only returned once; the database stores its SHA-256 hash
//   - Storing the new hash overwrites the previous pair, so any earlier token
//     stops verifying immediately
//   - Token expiration is set from Config.AuthTokenExpiration
func (t *opaqueTokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	// Get the user by username
	user, err := t.userRepo.GetByUsername(ctx, issueTokenInput.Username)
	if err != nil {
		// If user not found, return generic error to prevent enumeration
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Verify the password
	if !t.passwordService.ComparePassword(issueTokenInput.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Generate a new token
	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	// Store the hash and expiry on the user record, overwriting any previous token
	expiresAt := time.Now().UTC().Add(t.config.AuthTokenExpiration)
	user.TokenHash = &tokenHash
	user.TokenExpiresAt = &expiresAt

	if err := t.userRepo.UpdateToken(ctx, user); err != nil {
		return nil, err
	}

	// Return the plain token
	return &authDomain.IssueTokenOutput{
		AccessToken: plainToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify validates an opaque access token and resolves the identity it
// authenticates.
//
// The lookup is by token hash and only matches a stored expiry in the future,
// so a token presented at or after its expiry instant fails exactly like an
// unknown token. The authority set is re-resolved from the user's current
// roles on every call, never cached.
func (t *opaqueTokenUseCase) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	tokenHash := t.tokenService.HashToken(accessToken)

	user, err := t.userRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}

	return authDomain.NewIdentity(user), nil
}

// Invalidate clears the caller's active token pair from the user record. The
// operation is idempotent: invalidating a user with no active token succeeds.
func (t *opaqueTokenUseCase) Invalidate(ctx context.Context, identity *authDomain.Identity) error {
	user, err := t.userRepo.GetByUsername(ctx, identity.Username)
	if err != nil {
		return err
	}

	return t.userRepo.ClearToken(ctx, user)
}

// NewOpaqueTokenUseCase creates a TokenUseCase backed by server-stored opaque tokens.
func NewOpaqueTokenUseCase(
	config *config.Config,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &opaqueTokenUseCase{
		config:          config,
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
