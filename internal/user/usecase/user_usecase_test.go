package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	"github.com/allisson/courses/internal/authz"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/metrics"
	"github.com/allisson/courses/internal/user/domain"
)

// mockUserRepository is a mock implementation of UserRepository for testing.
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) ListByRole(
	ctx context.Context,
	role domain.Role,
	offset, limit int,
) ([]*domain.User, error) {
	args := m.Called(ctx, role, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func newTestDispatcher(t *testing.T) *authz.Dispatcher {
	t.Helper()
	dispatcher := authz.NewDispatcher(metrics.NewNoOpBusinessMetrics(), slog.New(slog.DiscardHandler))
	require.NoError(t, dispatcher.Register(authz.NewUserEvaluator(&mockUserRepository{})))
	return dispatcher
}

func identityFor(username string, roles ...domain.Role) *authDomain.Identity {
	return &authDomain.Identity{
		Username:    username,
		Authorities: authDomain.ResolveAuthorities(roles),
	}
}

func TestUserUseCase_ListStudents(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		students := []*domain.User{
			{Username: "bob", Roles: []domain.Role{domain.RoleStudent}},
			{Username: "kevin", Roles: []domain.Role{domain.RoleStudent}},
		}
		mockRepo.On("ListByRole", ctx, domain.RoleStudent, 0, 50).Return(students, nil).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		got, err := useCase.ListStudents(ctx, 0, 50)

		assert.NoError(t, err)
		assert.Equal(t, students, got)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserUseCase_ListInstructors(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		instructors := []*domain.User{
			{Username: "gru", Roles: []domain.Role{domain.RoleInstructor}},
		}
		mockRepo.On("ListByRole", ctx, domain.RoleInstructor, 10, 20).Return(instructors, nil).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		got, err := useCase.ListInstructors(ctx, 10, 20)

		assert.NoError(t, err)
		assert.Equal(t, instructors, got)
	})
}

func TestUserUseCase_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_InstructorProfile", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		gruID := uuid.Must(uuid.NewV7())
		gru := &domain.User{ID: gruID, Username: "gru", Roles: []domain.Role{domain.RoleInstructor}}
		mockRepo.On("GetByID", ctx, gruID).Return(gru, nil).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		profile, err := useCase.GetProfile(ctx, identityFor("bob", domain.RoleStudent), gruID)

		assert.NoError(t, err)
		assert.Equal(t, gru, profile)
	})

	t.Run("Success_OwnProfile", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		bobID := uuid.Must(uuid.NewV7())
		bob := &domain.User{ID: bobID, Username: "bob", Roles: []domain.Role{domain.RoleStudent}}
		mockRepo.On("GetByID", ctx, bobID).Return(bob, nil).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		profile, err := useCase.GetProfile(ctx, identityFor("bob", domain.RoleStudent), bobID)

		assert.NoError(t, err)
		assert.Equal(t, bob, profile)
	})

	t.Run("Error_OtherStudentProfileForbidden", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		kevinID := uuid.Must(uuid.NewV7())
		kevin := &domain.User{ID: kevinID, Username: "kevin", Roles: []domain.Role{domain.RoleStudent}}
		mockRepo.On("GetByID", ctx, kevinID).Return(kevin, nil).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		profile, err := useCase.GetProfile(ctx, identityFor("bob", domain.RoleStudent), kevinID)

		assert.Nil(t, profile)
		assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("Error_ProfileNotFound", func(t *testing.T) {
		mockRepo := &mockUserRepository{}
		missingID := uuid.Must(uuid.NewV7())
		mockRepo.On("GetByID", ctx, missingID).Return(nil, domain.ErrUserNotFound).Once()

		useCase := NewUserUseCase(mockRepo, newTestDispatcher(t))
		profile, err := useCase.GetProfile(ctx, identityFor("bob", domain.RoleStudent), missingID)

		assert.Nil(t, profile)
		assert.True(t, apperrors.Is(err, domain.ErrUserNotFound))
	})
}
