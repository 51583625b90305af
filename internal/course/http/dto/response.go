package dto

import (
	"time"

	courseDomain "github.com/allisson/courses/internal/course/domain"
)

// CourseResponse represents a course in API responses.
type CourseResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Topic            string    `json:"topic"`
	Hours            float64   `json:"hours"`
	Rating           float64   `json:"rating"`
	CreatedBy        string    `json:"created_by"`
	EnrolledStudents []string  `json:"enrolled_students"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListCoursesResponse represents a paginated list of courses.
type ListCoursesResponse struct {
	Courses []CourseResponse `json:"courses"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// MapCourseToResponse converts a domain course to an API response.
func MapCourseToResponse(course *courseDomain.Course) CourseResponse {
	enrolled := course.EnrolledStudents
	if enrolled == nil {
		enrolled = []string{}
	}

	return CourseResponse{
		ID:               course.ID.String(),
		Name:             course.Name,
		Category:         course.Category,
		Topic:            course.Topic,
		Hours:            course.Hours,
		Rating:           course.Rating,
		CreatedBy:        course.CreatedBy,
		EnrolledStudents: enrolled,
		CreatedAt:        course.CreatedAt,
	}
}

// MapCoursesToListResponse converts domain courses to a paginated API response.
func MapCoursesToListResponse(courses []*courseDomain.Course, offset, limit int) ListCoursesResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, MapCourseToResponse(course))
	}

	return ListCoursesResponse{
		Courses: responses,
		Offset:  offset,
		Limit:   limit,
	}
}
