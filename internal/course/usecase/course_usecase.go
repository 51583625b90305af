// Package usecase implements the course business logic and orchestrates course domain operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	"github.com/allisson/courses/internal/authz"
	"github.com/allisson/courses/internal/course/domain"
	apperrors "github.com/allisson/courses/internal/errors"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// CourseRepository interface defines course repository operations
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	List(ctx context.Context, offset, limit int) ([]*domain.Course, error)
	Enroll(ctx context.Context, courseID uuid.UUID, username string) error
}

// UseCase defines the interface for course business logic operations.
//
// List and Get are public. Create records the caller as owner after the coarse
// CREATE_COURSE gate. Update and Play run the fine-grained checks through the
// authorization dispatcher.
type UseCase interface {
	List(ctx context.Context, offset, limit int) ([]*domain.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Create(ctx context.Context, identity *authDomain.Identity, input *domain.CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, identity *authDomain.Identity, id uuid.UUID, input *domain.UpdateCourseInput) (*domain.Course, error)
	Play(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) (*domain.Course, error)
	Enroll(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error
}

// CourseUseCase handles course-related business logic
type CourseUseCase struct {
	courseRepo CourseRepository
	dispatcher *authz.Dispatcher
}

// NewCourseUseCase creates a new CourseUseCase
func NewCourseUseCase(courseRepo CourseRepository, dispatcher *authz.Dispatcher) UseCase {
	return &CourseUseCase{
		courseRepo: courseRepo,
		dispatcher: dispatcher,
	}
}

// List retrieves courses ordered by name. The catalog is public.
func (u *CourseUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Course, error) {
	return u.courseRepo.List(ctx, offset, limit)
}

// Get retrieves a course by ID. The catalog is public.
func (u *CourseUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return u.courseRepo.GetByID(ctx, id)
}

// Create stores a new course with the caller recorded as owner.
func (u *CourseUseCase) Create(
	ctx context.Context,
	identity *authDomain.Identity,
	input *domain.CreateCourseInput,
) (*domain.Course, error) {
	if identity == nil || !identity.HasPermission(userDomain.PermissionCreateCourse) {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "caller cannot create courses")
	}

	course := &domain.Course{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      input.Name,
		Category:  input.Category,
		Topic:     input.Topic,
		Hours:     input.Hours,
		Rating:    input.Rating,
		CreatedBy: identity.Username,
		CreatedAt: time.Now().UTC(),
	}

	if err := u.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// Update modifies a course after the ownership check: only the creating
// instructor may update it. A missing course is reported as not found, a
// failed ownership check as forbidden.
func (u *CourseUseCase) Update(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
	input *domain.UpdateCourseInput,
) (*domain.Course, error) {
	course, err := u.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := u.dispatcher.HasPermission(
		ctx, identity, authz.ResourceTypeCourse, course, userDomain.PermissionUpdateCourse,
	)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "caller cannot update this course")
	}

	course.Name = input.Name
	course.Category = input.Category
	course.Topic = input.Topic
	course.Hours = input.Hours
	course.Rating = input.Rating

	if err := u.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// Play grants playback of a course. The enrollment check dispatches by ID so
// a course the caller cannot play is indistinguishable from one that does not
// exist.
func (u *CourseUseCase) Play(
	ctx context.Context,
	identity *authDomain.Identity,
	id uuid.UUID,
) (*domain.Course, error) {
	allowed, err := u.dispatcher.HasPermissionByID(
		ctx, identity, authz.ResourceTypeCourse, id.String(), userDomain.PermissionPlayCourse,
	)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.Wrap(apperrors.ErrForbidden, "caller cannot play this course")
	}

	return u.courseRepo.GetByID(ctx, id)
}

// Enroll records the caller as a student of the course.
func (u *CourseUseCase) Enroll(ctx context.Context, identity *authDomain.Identity, id uuid.UUID) error {
	if identity == nil || !identity.HasRole(userDomain.RoleStudent) {
		return apperrors.Wrap(apperrors.ErrForbidden, "only students can enroll in courses")
	}

	// Ensure the course exists before recording the enrollment.
	if _, err := u.courseRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return u.courseRepo.Enroll(ctx, id, identity.Username)
}
