package authz

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	userDomain "github.com/allisson/courses/internal/user/domain"
)

func TestUserEvaluator_Evaluate(t *testing.T) {
	ctx := context.Background()
	evaluator := NewUserEvaluator(&mockUserGetter{})

	instructor := &userDomain.User{Username: "gru", Roles: []userDomain.Role{userDomain.RoleInstructor}}
	student := &userDomain.User{Username: "kevin", Roles: []userDomain.Role{userDomain.RoleStudent}}

	t.Run("Success_InstructorProfileVisibleToAnyViewer", func(t *testing.T) {
		allowed, err := evaluator.Evaluate(
			ctx, identityFor("bob", userDomain.RoleStudent),
			instructor, userDomain.PermissionViewProfile,
		)

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Success_OwnProfileVisible", func(t *testing.T) {
		allowed, err := evaluator.Evaluate(
			ctx, identityFor("KEVIN", userDomain.RoleStudent),
			student, userDomain.PermissionViewProfile,
		)

		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("Success_OtherStudentProfileDenied", func(t *testing.T) {
		allowed, err := evaluator.Evaluate(
			ctx, identityFor("bob", userDomain.RoleStudent),
			student, userDomain.PermissionViewProfile,
		)

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Success_UnhandledPermissionDenied", func(t *testing.T) {
		allowed, err := evaluator.Evaluate(
			ctx, identityFor("bob", userDomain.RoleStudent),
			student, userDomain.PermissionPlayCourse,
		)

		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("Success_WrongResourceTypeDenied", func(t *testing.T) {
		allowed, err := evaluator.Evaluate(
			ctx, identityFor("bob", userDomain.RoleStudent),
			"not-a-user", userDomain.PermissionViewProfile,
		)

		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestUserEvaluator_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LoadsExistingUser", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		user := &userDomain.User{ID: userID, Username: "gru"}
		getter := &mockUserGetter{}
		getter.On("GetByID", ctx, userID).Return(user, nil).Once()

		evaluator := NewUserEvaluator(getter)
		resource, err := evaluator.Load(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, user, resource)
	})

	t.Run("Success_MissingUserYieldsNil", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		getter := &mockUserGetter{}
		getter.On("GetByID", ctx, userID).Return(nil, userDomain.ErrUserNotFound).Once()

		evaluator := NewUserEvaluator(getter)
		resource, err := evaluator.Load(ctx, userID.String())

		assert.NoError(t, err)
		assert.Nil(t, resource)
	})

	t.Run("Success_UnparsableIDYieldsNil", func(t *testing.T) {
		evaluator := NewUserEvaluator(&mockUserGetter{})
		resource, err := evaluator.Load(ctx, "42")

		assert.NoError(t, err)
		assert.Nil(t, resource)
	})
}
