package service

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	"github.com/allisson/courses/internal/errors"
)

func testSecret() string {
	return base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func testClaims() *authDomain.Claims {
	now := time.Now().Truncate(time.Second)
	return &authDomain.Claims{
		Subject:     "lucy",
		IssuedAt:    now,
		ExpiresAt:   now.Add(30 * time.Minute),
		TokenID:     "7f1f04ff-5ed6-4d55-b0ee-482a4f7f51bb",
		Authorities: []string{"CREATE_COURSE", "ROLE_INSTRUCTOR"},
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS256")

		require.NoError(t, err)
		assert.NotNil(t, jwtService)
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "RS256")

		assert.Error(t, err)
		assert.Nil(t, jwtService)
	})

	t.Run("Error_InvalidBase64Secret", func(t *testing.T) {
		jwtService, err := NewJWTService("not-valid-base64!!!", "HS256")

		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		assert.Nil(t, jwtService)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		jwtService, err := NewJWTService("", "HS256")

		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		assert.Nil(t, jwtService)
	})

	t.Run("Error_SecretTooShort", func(t *testing.T) {
		shortSecret := base64.StdEncoding.EncodeToString([]byte("too-short"))
		jwtService, err := NewJWTService(shortSecret, "HS256")

		assert.Error(t, err)
		assert.Nil(t, jwtService)
	})
}

func TestJWTService_SignAndVerify(t *testing.T) {
	t.Run("Success_RoundTrip", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)

		claims := testClaims()
		signedToken, err := jwtService.Sign(claims)
		require.NoError(t, err)
		assert.NotEmpty(t, signedToken)

		verified, err := jwtService.Verify(signedToken)
		require.NoError(t, err)
		assert.Equal(t, claims.Subject, verified.Subject)
		assert.Equal(t, claims.TokenID, verified.TokenID)
		assert.Equal(t, claims.Authorities, verified.Authorities)
		assert.True(t, claims.IssuedAt.Equal(verified.IssuedAt))
		assert.True(t, claims.ExpiresAt.Equal(verified.ExpiresAt))
	})

	t.Run("Success_RoundTripHS512", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS512")
		require.NoError(t, err)

		signedToken, err := jwtService.Sign(testClaims())
		require.NoError(t, err)

		verified, err := jwtService.Verify(signedToken)
		require.NoError(t, err)
		assert.Equal(t, "lucy", verified.Subject)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)

		claims := testClaims()
		claims.IssuedAt = time.Now().Add(-time.Hour)
		claims.ExpiresAt = time.Now().Add(-30 * time.Minute)
		signedToken, err := jwtService.Sign(claims)
		require.NoError(t, err)

		verified, err := jwtService.Verify(signedToken)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		assert.Nil(t, verified)
	})

	t.Run("Error_ExpiryInstant", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)

		// A token presented at its exact expiry instant is already invalid:
		// expiry <= now rejects, only expiry > now passes.
		claims := testClaims()
		claims.ExpiresAt = time.Now().Truncate(time.Second)
		claims.IssuedAt = claims.ExpiresAt.Add(-30 * time.Minute)
		signedToken, err := jwtService.Sign(claims)
		require.NoError(t, err)

		verified, err := jwtService.Verify(signedToken)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		assert.Nil(t, verified)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		signer, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)
		otherSecret := base64.StdEncoding.EncodeToString([]byte("fedcba9876543210fedcba9876543210"))
		verifier, err := NewJWTService(otherSecret, "HS256")
		require.NoError(t, err)

		signedToken, err := signer.Sign(testClaims())
		require.NoError(t, err)

		verified, err := verifier.Verify(signedToken)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSignature)
		assert.Nil(t, verified)
	})

	t.Run("Error_WrongAlgorithm", func(t *testing.T) {
		signer, err := NewJWTService(testSecret(), "HS512")
		require.NoError(t, err)
		verifier, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)

		signedToken, err := signer.Sign(testClaims())
		require.NoError(t, err)

		verified, err := verifier.Verify(signedToken)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		assert.Nil(t, verified)
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		jwtService, err := NewJWTService(testSecret(), "HS256")
		require.NoError(t, err)

		verified, err := jwtService.Verify("not.a.token")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		assert.Nil(t, verified)
	})
}
