// Package domain defines authentication domain models and business logic.
//
// It provides the authenticated Identity carried through each request and the
// resolution of a user's effective authority set from the role/permission graph.
package domain

import (
	"sort"
	"strings"

	userDomain "github.com/allisson/courses/internal/user/domain"
)

// RoleAuthorityPrefix distinguishes role-derived authorities from raw
// permission names in the authority set.
const RoleAuthorityPrefix = "ROLE_"

// Identity is the authenticated principal of one request or one token.
// It is derived, never persisted: username plus the effective authority set
// valid at resolution time.
type Identity struct {
	Username    string
	Authorities []string
}

// HasAuthority reports whether the identity holds the named authority.
// Matching is case-insensitive, mirroring username comparisons.
func (i *Identity) HasAuthority(name string) bool {
	if name == "" {
		return false
	}
	for _, authority := range i.Authorities {
		if strings.EqualFold(authority, name) {
			return true
		}
	}
	return false
}

// HasPermission reports whether the identity holds the permission as an authority.
func (i *Identity) HasPermission(permission userDomain.Permission) bool {
	return i.HasAuthority(string(permission))
}

// HasRole reports whether the identity holds the prefixed role authority.
func (i *Identity) HasRole(role userDomain.Role) bool {
	return i.HasAuthority(RoleAuthorityPrefix + string(role))
}

// ResolveAuthorities computes the effective authority set for the given roles:
// the union of every permission granted by every role, plus the prefixed role
// names themselves as coarse authorities. The result is deduplicated and
// sorted so resolution is deterministic. It is recomputed from the current
// role assignments on every call and never cached.
func ResolveAuthorities(roles []userDomain.Role) []string {
	seen := make(map[string]struct{})
	for _, role := range roles {
		seen[RoleAuthorityPrefix+string(role)] = struct{}{}
		for _, permission := range role.Permissions() {
			seen[string(permission)] = struct{}{}
		}
	}

	authorities := make([]string, 0, len(seen))
	for authority := range seen {
		authorities = append(authorities, authority)
	}
	sort.Strings(authorities)

	return authorities
}

// NewIdentity builds an Identity for a user from its current roles.
func NewIdentity(user *userDomain.User) *Identity {
	return &Identity{
		Username:    user.Username,
		Authorities: ResolveAuthorities(user.Roles),
	}
}
