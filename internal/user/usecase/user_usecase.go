// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	"github.com/allisson/courses/internal/authz"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/user/domain"
)

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role, offset, limit int) ([]*domain.User, error)
}

// UseCase defines the interface for user business logic operations.
// The coarse authority checks happen in the HTTP middleware; GetProfile adds
// the fine-grained post-check on the loaded profile.
type UseCase interface {
	ListStudents(ctx context.Context, offset, limit int) ([]*domain.User, error)
	ListInstructors(ctx context.Context, offset, limit int) ([]*domain.User, error)
	GetProfile(ctx context.Context, identity *authDomain.Identity, userID uuid.UUID) (*domain.User, error)
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	userRepo   UserRepository
	dispatcher *authz.Dispatcher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(userRepo UserRepository, dispatcher *authz.Dispatcher) UseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// ListStudents retrieves users holding the STUDENT role.
func (u *UserUseCase) ListStudents(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return u.userRepo.ListByRole(ctx, domain.RoleStudent, offset, limit)
}

// ListInstructors retrieves users holding the INSTRUCTOR role.
func (u *UserUseCase) ListInstructors(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return u.userRepo.ListByRole(ctx, domain.RoleInstructor, offset, limit)
}

// GetProfile retrieves a user profile and applies the fine-grained visibility
// check on the loaded record: a profile is visible when the target is an
// instructor or belongs to the caller. A denied check yields ErrForbidden,
// distinct from a missing profile.
func (u *UserUseCase) GetProfile(
	ctx context.Context,
	identity *authDomain.Identity,
	userID uuid.UUID,
) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	allowed, err := u.dispatcher.HasPermission(
		ctx, identity, authz.ResourceTypeUser, user, domain.PermissionViewProfile,
	)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "profile not visible to caller")
	}

	return user, nil
}
