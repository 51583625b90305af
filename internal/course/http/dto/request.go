// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	courseDomain "github.com/allisson/courses/internal/course/domain"
)

// CourseRequest contains the parameters for creating or updating a course.
type CourseRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Topic    string  `json:"topic"`
	Hours    float64 `json:"hours"`
	Rating   float64 `json:"rating"`
}

// Validate checks if the course request is valid.
func (r *CourseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&r.Category,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&r.Topic,
			validation.Required,
			validation.Length(1, 255),
		),
		validation.Field(&r.Hours,
			validation.Required,
			validation.Min(0.5),
		),
		validation.Field(&r.Rating,
			validation.Min(0.0),
			validation.Max(5.0),
		),
	)
}

// ToCreateCourseInput converts the request to the create use case input.
func (r *CourseRequest) ToCreateCourseInput() *courseDomain.CreateCourseInput {
	return &courseDomain.CreateCourseInput{
		Name:     r.Name,
		Category: r.Category,
		Topic:    r.Topic,
		Hours:    r.Hours,
		Rating:   r.Rating,
	}
}

// ToUpdateCourseInput converts the request to the update use case input.
func (r *CourseRequest) ToUpdateCourseInput() *courseDomain.UpdateCourseInput {
	return &courseDomain.UpdateCourseInput{
		Name:     r.Name,
		Category: r.Category,
		Topic:    r.Topic,
		Hours:    r.Hours,
		Rating:   r.Rating,
	}
}
