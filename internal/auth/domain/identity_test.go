package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	userDomain "github.com/allisson/courses/internal/user/domain"
)

func TestIdentity_HasAuthority(t *testing.T) {
	identity := &Identity{
		Username:    "Lucy",
		Authorities: []string{"ROLE_INSTRUCTOR", "CREATE_COURSE", "UPDATE_COURSE"},
	}

	t.Run("Success_ExactMatch", func(t *testing.T) {
		assert.True(t, identity.HasAuthority("CREATE_COURSE"))
	})

	t.Run("Success_CaseInsensitiveMatch", func(t *testing.T) {
		assert.True(t, identity.HasAuthority("create_course"))
		assert.True(t, identity.HasAuthority("Role_Instructor"))
	})

	t.Run("Failure_MissingAuthority", func(t *testing.T) {
		assert.False(t, identity.HasAuthority("LIST_INSTRUCTORS"))
	})

	t.Run("Failure_EmptyName", func(t *testing.T) {
		assert.False(t, identity.HasAuthority(""))
	})
}

func TestIdentity_HasRole(t *testing.T) {
	identity := &Identity{
		Username:    "Bob",
		Authorities: []string{"ROLE_STUDENT", "PLAY_COURSE"},
	}

	assert.True(t, identity.HasRole(userDomain.RoleStudent))
	assert.False(t, identity.HasRole(userDomain.RoleInstructor))
	assert.True(t, identity.HasPermission(userDomain.PermissionPlayCourse))
	assert.False(t, identity.HasPermission(userDomain.PermissionCreateCourse))
}

func TestResolveAuthorities(t *testing.T) {
	t.Run("Success_SingleRoleUnion", func(t *testing.T) {
		authorities := ResolveAuthorities([]userDomain.Role{userDomain.RoleStudent})

		assert.Contains(t, authorities, "ROLE_STUDENT")
		assert.Contains(t, authorities, "PLAY_COURSE")
		assert.Contains(t, authorities, "VIEW_PROFILE")
		assert.NotContains(t, authorities, "CREATE_COURSE")
	})

	t.Run("Success_MultiRoleUnionIsDeduplicated", func(t *testing.T) {
		authorities := ResolveAuthorities([]userDomain.Role{
			userDomain.RoleStudent,
			userDomain.RoleInstructor,
		})

		// VIEW_PROFILE and PLAY_COURSE are granted by both roles but appear once
		count := 0
		for _, a := range authorities {
			if a == "VIEW_PROFILE" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Contains(t, authorities, "ROLE_STUDENT")
		assert.Contains(t, authorities, "ROLE_INSTRUCTOR")
		assert.Contains(t, authorities, "CREATE_COURSE")
	})

	t.Run("Success_Deterministic", func(t *testing.T) {
		roles := []userDomain.Role{userDomain.RoleAdmin, userDomain.RoleStudent}

		first := ResolveAuthorities(roles)
		second := ResolveAuthorities([]userDomain.Role{userDomain.RoleStudent, userDomain.RoleAdmin})

		assert.Equal(t, first, second)
	})

	t.Run("Success_NoRolesYieldsEmptySet", func(t *testing.T) {
		assert.Empty(t, ResolveAuthorities(nil))
	})
}

func TestNewIdentity(t *testing.T) {
	user := &userDomain.User{
		Username: "Lucy",
		Roles:    []userDomain.Role{userDomain.RoleInstructor},
	}

	identity := NewIdentity(user)

	assert.Equal(t, "Lucy", identity.Username)
	assert.True(t, identity.HasRole(userDomain.RoleInstructor))
	assert.True(t, identity.HasPermission(userDomain.PermissionUpdateCourse))
}
