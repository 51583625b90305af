// Package http provides HTTP handlers for course-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/courses/internal/auth/http"
	"github.com/allisson/courses/internal/course/http/dto"
	"github.com/allisson/courses/internal/course/usecase"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/httputil"
	customValidation "github.com/allisson/courses/internal/validation"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	courseUseCase usecase.UseCase
	logger        *slog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseUseCase usecase.UseCase, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseUseCase: courseUseCase,
		logger:        logger,
	}
}

// ListCoursesHandler lists the course catalog.
// GET /v1/courses - Public.
func (h *CourseHandler) ListCoursesHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	courses, err := h.courseUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCoursesToListResponse(courses, offset, limit))
}

// GetCourseHandler retrieves a single course.
// GET /v1/courses/:id - Public.
func (h *CourseHandler) GetCourseHandler(c *gin.Context) {
	courseID, err := h.parseCourseID(c)
	if err != nil {
		return
	}

	course, err := h.courseUseCase.Get(c.Request.Context(), courseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCourseToResponse(course))
}

// CreateCourseHandler creates a new course owned by the caller.
// POST /v1/courses - Requires the CREATE_COURSE authority.
func (h *CourseHandler) CreateCourseHandler(c *gin.Context) {
	var req dto.CourseRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	course, err := h.courseUseCase.Create(c.Request.Context(), identity, req.ToCreateCourseInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCourseToResponse(course))
}

// UpdateCourseHandler updates a course owned by the caller.
// PUT /v1/courses/:id - Requires the UPDATE_COURSE authority plus ownership.
func (h *CourseHandler) UpdateCourseHandler(c *gin.Context) {
	courseID, err := h.parseCourseID(c)
	if err != nil {
		return
	}

	var req dto.CourseRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	course, err := h.courseUseCase.Update(c.Request.Context(), identity, courseID, req.ToUpdateCourseInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCourseToResponse(course))
}

// PlayCourseHandler grants playback of a course to an enrolled student.
// POST /v1/courses/:id/play - Requires the PLAY_COURSE authority plus enrollment.
func (h *CourseHandler) PlayCourseHandler(c *gin.Context) {
	courseID, err := h.parseCourseID(c)
	if err != nil {
		return
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	course, err := h.courseUseCase.Play(c.Request.Context(), identity, courseID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCourseToResponse(course))
}

// EnrollCourseHandler enrolls the calling student in a course.
// POST /v1/courses/:id/enroll - Requires authentication; students only.
func (h *CourseHandler) EnrollCourseHandler(c *gin.Context) {
	courseID, err := h.parseCourseID(c)
	if err != nil {
		return
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.courseUseCase.Enroll(c.Request.Context(), identity, courseID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseCourseID extracts the course UUID from the path, writing the error
// response itself on failure.
func (h *CourseHandler) parseCourseID(c *gin.Context) (uuid.UUID, error) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid course id: must be a valid UUID"),
			h.logger)
		return uuid.Nil, err
	}
	return courseID, nil
}
