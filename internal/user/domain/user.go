package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a principal of the platform.
//
// In opaque token mode the currently active access token is stored on the user
// record as a hash together with its expiry. Issuing a new token overwrites the
// pair; at most one opaque token per user is valid at any time.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role

	// TokenHash is the SHA-256 hash of the active opaque token, nil when no
	// token is active or when running in jwt mode.
	TokenHash *string
	// TokenExpiresAt is the expiry instant of the active opaque token.
	TokenExpiresAt *time.Time

	CreatedAt time.Time
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsSameUser reports whether the given username identifies this user.
// Username comparisons are case-insensitive everywhere in the system.
func (u *User) IsSameUser(username string) bool {
	return strings.EqualFold(u.Username, username)
}
