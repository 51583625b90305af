// Package http provides HTTP handlers for user-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/courses/internal/auth/http"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/httputil"
	"github.com/allisson/courses/internal/user/http/dto"
	"github.com/allisson/courses/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ListStudentsHandler lists users holding the STUDENT role.
// GET /v1/students - Requires the LIST_STUDENTS authority.
func (h *UserHandler) ListStudentsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	students, err := h.userUseCase.ListStudents(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(students, offset, limit))
}

// ListInstructorsHandler lists users holding the INSTRUCTOR role.
// GET /v1/instructors - Requires the LIST_INSTRUCTORS authority.
func (h *UserHandler) ListInstructorsHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	instructors, err := h.userUseCase.ListInstructors(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(instructors, offset, limit))
}

// GetProfileHandler retrieves a user profile.
// GET /v1/profiles/:id - Requires the VIEW_PROFILE authority; the fine-grained
// visibility check on the loaded profile yields 403 when it fails.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c,
			fmt.Errorf("invalid user id: must be a valid UUID"),
			h.logger)
		return
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	profile, err := h.userUseCase.GetProfile(c.Request.Context(), identity, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(profile))
}
