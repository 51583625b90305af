package authz

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	apperrors "github.com/allisson/courses/internal/errors"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// ResourceTypeUser is the registry tag for user resources.
const ResourceTypeUser = "user"

// UserGetter loads user instances for ID-only dispatch.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
}

// UserEvaluator decides fine-grained permissions on user profiles: a profile
// is viewable when the target is an instructor or when it belongs to the
// caller.
type UserEvaluator struct {
	userGetter UserGetter
}

// NewUserEvaluator creates a UserEvaluator backed by the given loader.
func NewUserEvaluator(userGetter UserGetter) *UserEvaluator {
	return &UserEvaluator{
		userGetter: userGetter,
	}
}

// ResourceType returns the user registry tag.
func (e *UserEvaluator) ResourceType() string {
	return ResourceTypeUser
}

// Evaluate applies the per-profile predicates.
func (e *UserEvaluator) Evaluate(
	ctx context.Context,
	identity *authDomain.Identity,
	resource any,
	permission userDomain.Permission,
) (bool, error) {
	target, ok := resource.(*userDomain.User)
	if !ok {
		return false, nil
	}

	switch permission {
	case userDomain.PermissionViewProfile:
		return target.HasRole(userDomain.RoleInstructor) || target.IsSameUser(identity.Username), nil
	default:
		return false, nil
	}
}

// Load fetches a user by ID. An unparsable ID or a missing user yields a nil
// instance and no error, so the decision is a plain deny.
func (e *UserEvaluator) Load(ctx context.Context, id string) (any, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	user, err := e.userGetter.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
