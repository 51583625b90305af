package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/courses/internal/auth/http/dto"
	authUseCase "github.com/allisson/courses/internal/auth/usecase"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/httputil"
	customValidation "github.com/allisson/courses/internal/validation"
)

// TokenHandler handles HTTP requests for the token lifecycle.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenHandler exchanges form-encoded credentials for an access token.
// POST /auth/token - No authentication required (this is the authentication endpoint).
// Returns 201 Created with the access token.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	// Parse and bind form data
	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), req.ToIssueTokenInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		AccessToken: output.AccessToken,
	})
}

// InvalidateTokenHandler revokes the caller's active token.
// DELETE /auth/token - Requires authentication.
// Returns 204 No Content on success; 409 Conflict when the token mode does
// not support revocation.
func (h *TokenHandler) InvalidateTokenHandler(c *gin.Context) {
	identity, ok := GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.tokenUseCase.Invalidate(c.Request.Context(), identity); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
