// Package domain defines course domain models and business logic.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Course represents a course offered on the platform.
type Course struct {
	ID       uuid.UUID
	Name     string
	Category string
	Topic    string
	Hours    float64
	Rating   float64

	// CreatedBy is the username of the instructor who created the course.
	CreatedBy string

	// EnrolledStudents holds the usernames of students enrolled in the course.
	EnrolledStudents []string

	CreatedAt time.Time
}

// IsCreatedBy reports whether the given username created this course.
// Username comparisons are case-insensitive everywhere in the system.
func (c *Course) IsCreatedBy(username string) bool {
	return strings.EqualFold(c.CreatedBy, username)
}

// IsEnrolled reports whether the given username is enrolled in this course.
func (c *Course) IsEnrolled(username string) bool {
	for _, student := range c.EnrolledStudents {
		if strings.EqualFold(student, username) {
			return true
		}
	}
	return false
}

// CreateCourseInput contains the fields for creating a course.
type CreateCourseInput struct {
	Name     string
	Category string
	Topic    string
	Hours    float64
	Rating   float64
}

// UpdateCourseInput contains the mutable fields of a course.
type UpdateCourseInput struct {
	Name     string
	Category string
	Topic    string
	Hours    float64
	Rating   float64
}
