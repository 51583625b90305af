package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/courses/internal/auth/usecase"
	apperrors "github.com/allisson/courses/internal/errors"
	"github.com/allisson/courses/internal/httputil"
	userDomain "github.com/allisson/courses/internal/user/domain"
)

// AuthenticationMiddleware resolves the caller's identity from a Bearer token
// in the Authorization header.
//
// The middleware never rejects a request on its own: a missing, malformed or
// unverifiable token leaves the request anonymous and the authorization gate
// downstream produces the 401. This keeps authentication failures and
// authorization denials on one uniform path.
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication skipped: malformed authorization header")
			c.Next()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication skipped: empty bearer token")
			c.Next()
			return
		}

		identity, err := tokenUseCase.Verify(c.Request.Context(), plainToken)
		if err != nil {
			// The request proceeds anonymously; the coarse gate denies later.
			logger.Debug("token verification failed, proceeding anonymous",
				slog.String("error", err.Error()))
			c.Next()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("username", identity.Username))

		c.Next()
	}
}

// RequireAuthority is the coarse authorization gate: anonymous requests get
// 401, authenticated requests lacking the permission authority get 403.
func RequireAuthority(permission userDomain.Permission, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !identity.HasPermission(permission) {
			logger.Debug("authority check failed",
				slog.String("username", identity.Username),
				slog.String("permission", string(permission)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuthenticated rejects anonymous requests with 401 and imposes no
// authority requirement.
func RequireAuthenticated(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c.Request.Context()); !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
