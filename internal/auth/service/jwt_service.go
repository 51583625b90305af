package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	apperrors "github.com/allisson/courses/internal/errors"
	customValidation "github.com/allisson/courses/internal/validation"
)

// signingMethods maps configuration algorithm identifiers to HMAC signing methods.
// Only symmetric HMAC family algorithms are supported; the secret is static and
// pre-provisioned, key rotation is out of scope.
var signingMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// jwtClaims is the wire representation of the signed claim set.
type jwtClaims struct {
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// jwtService implements JWTService using a symmetric HMAC secret.
type jwtService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
}

// NewJWTService creates a JWTService from a base64-encoded symmetric secret and
// an algorithm identifier (HS256, HS384 or HS512). Returns an error for an
// unknown algorithm, a missing or undecodable secret, or a secret shorter
// than 32 bytes.
func NewJWTService(base64Secret, algorithm string) (JWTService, error) {
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}

	if err := validation.Validate(base64Secret, validation.Required, customValidation.Base64); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode base64 signing secret")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("signing secret must be at least 32 bytes, got %d", len(secret))
	}

	return &jwtService{
		secret: secret,
		method: method,
	}, nil
}

// Sign produces a compact signed token carrying the given claims.
func (s *jwtService) Sign(claims *authDomain.Claims) (string, error) {
	token := jwt.NewWithClaims(s.method, &jwtClaims{
		Authorities: claims.Authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			ID:        claims.TokenID,
		},
	})

	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a compact signed token.
//
// The signing method is pinned to the configured algorithm to prevent
// algorithm-confusion attacks. A token presented at or after its expiry
// instant is rejected.
func (s *jwtService) Verify(signedToken string) (*authDomain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(signedToken, &jwtClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != s.method {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, authDomain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, authDomain.ErrInvalidSignature
		default:
			return nil, authDomain.ErrInvalidToken
		}
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Claims{
		Subject:     claims.Subject,
		IssuedAt:    numericDateToTime(claims.IssuedAt),
		ExpiresAt:   numericDateToTime(claims.ExpiresAt),
		TokenID:     claims.ID,
		Authorities: claims.Authorities,
	}, nil
}

// numericDateToTime converts an optional JWT numeric date to a time value.
func numericDateToTime(date *jwt.NumericDate) time.Time {
	if date == nil {
		return time.Time{}
	}
	return date.Time
}
