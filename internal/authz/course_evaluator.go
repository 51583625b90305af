package authz

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	courseDomain "github.com/allisson/courses/internal/course/domain"
	apperrors "github.com/allisson/courses/internal/errors"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// ResourceTypeCourse is the registry tag for course resources.
const ResourceTypeCourse = "course"

// CourseGetter loads course instances for ID-only dispatch.
type CourseGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseDomain.Course, error)
}

// CourseEvaluator decides fine-grained permissions on courses:
// updating requires ownership, playing requires enrollment. Everything else
// is denied here regardless of the identity's coarse authorities.
type CourseEvaluator struct {
	courseGetter CourseGetter
}

// NewCourseEvaluator creates a CourseEvaluator backed by the given loader.
func NewCourseEvaluator(courseGetter CourseGetter) *CourseEvaluator {
	return &CourseEvaluator{
		courseGetter: courseGetter,
	}
}

// ResourceType returns the course registry tag.
func (e *CourseEvaluator) ResourceType() string {
	return ResourceTypeCourse
}

// Evaluate applies the per-course predicates.
func (e *CourseEvaluator) Evaluate(
	ctx context.Context,
	identity *authDomain.Identity,
	resource any,
	permission userDomain.Permission,
) (bool, error) {
	course, ok := resource.(*courseDomain.Course)
	if !ok {
		return false, nil
	}

	switch permission {
	case userDomain.PermissionUpdateCourse:
		return course.IsCreatedBy(identity.Username), nil
	case userDomain.PermissionPlayCourse:
		return course.IsEnrolled(identity.Username), nil
	default:
		return false, nil
	}
}

// Load fetches a course by ID. An unparsable ID or a missing course yields a
// nil instance and no error, so the decision is a plain deny.
func (e *CourseEvaluator) Load(ctx context.Context, id string) (any, error) {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	course, err := e.courseGetter.GetByID(ctx, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return course, nil
}
