package domain

import (
	"github.com/allisson/courses/internal/errors"
)

// Course domain errors.
var (
	// ErrCourseNotFound indicates a course with the specified ID was not found.
	ErrCourseNotFound = errors.Wrap(errors.ErrNotFound, "course not found")

	// ErrAlreadyEnrolled indicates the student is already enrolled in the course.
	ErrAlreadyEnrolled = errors.Wrap(errors.ErrConflict, "student already enrolled in course")
)
