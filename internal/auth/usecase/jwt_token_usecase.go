package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	authService "github.com/allisson/courses/internal/auth/service"
	"github.com/allisson/courses/internal/config"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// jwtTokenUseCase implements TokenUseCase with self-contained signed tokens.
// Nothing is stored server-side: the authority set is frozen into the claims
// at issuance and tokens remain valid until expiry.
type jwtTokenUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	passwordService authService.PasswordService
	jwtService      authService.JWTService
}

// Issue authenticates the credentials and signs a new token carrying the
// user's effective authority set. Each token receives a unique random ID so
// two tokens issued in the same second are still distinguishable.
func (t *jwtTokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	user, err := t.userRepo.GetByUsername(ctx, issueTokenInput.Username)
	if err != nil {
		// If user not found, return generic error to prevent enumeration
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.passwordService.ComparePassword(issueTokenInput.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expiresAt := now.Add(t.config.AuthTokenExpiration)
	claims := &authDomain.Claims{
		Subject:     user.Username,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
		TokenID:     uuid.Must(uuid.NewV7()).String(),
		Authorities: authDomain.ResolveAuthorities(user.Roles),
	}

	accessToken, err := t.jwtService.Sign(claims)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Verify checks the token's signature and expiry and builds the identity from
// the authorities embedded in the claims. No repository access happens here:
// role changes made after issuance do not take effect until re-issuance.
func (t *jwtTokenUseCase) Verify(ctx context.Context, accessToken string) (*authDomain.Identity, error) {
	claims, err := t.jwtService.Verify(accessToken)
	if err != nil {
		return nil, err
	}

	return &authDomain.Identity{
		Username:    claims.Subject,
		Authorities: claims.Authorities,
	}, nil
}

// Invalidate always fails: a signed token carries its own validity and the
// server keeps no record to revoke.
func (t *jwtTokenUseCase) Invalidate(ctx context.Context, identity *authDomain.Identity) error {
	return authDomain.ErrNotRevocable
}

// NewJWTTokenUseCase creates a TokenUseCase backed by self-contained signed tokens.
func NewJWTTokenUseCase(
	config *config.Config,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	jwtService authService.JWTService,
) TokenUseCase {
	return &jwtTokenUseCase{
		config:          config,
		userRepo:        userRepo,
		passwordService: passwordService,
		jwtService:      jwtService,
	}
}
