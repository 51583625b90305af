// Package http provides the API HTTP server and its route table.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/courses/internal/auth/http"
	authUseCase "github.com/allisson/courses/internal/auth/usecase"
	"github.com/allisson/courses/internal/config"
	courseHTTP "github.com/allisson/courses/internal/course/http"
	"github.com/allisson/courses/internal/metrics"
	userDomain "github.com/allisson/courses/internal/user/domain"
	userHTTP "github.com/allisson/courses/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new API server bound to the given address.
// Call SetupRouter before Start to mount the route table.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig holds the handlers and middleware dependencies the router mounts.
type RouterConfig struct {
	Config          *config.Config
	TokenUseCase    authUseCase.TokenUseCase
	TokenHandler    *authHTTP.TokenHandler
	UserHandler     *userHTTP.UserHandler
	CourseHandler   *courseHTTP.CourseHandler
	MetricsProvider *metrics.Provider
}

// SetupRouter builds the Gin engine with the full route table.
//
// Authentication is resolved globally: requests with a valid bearer token get
// an identity on the request context, everything else proceeds as anonymous.
// Route guards then decide whether anonymous or underprivileged callers pass.
func (s *Server) SetupRouter(rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	if corsMiddleware := createCORSMiddleware(rc.Config.CORSEnabled, rc.Config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(authHTTP.AuthenticationMiddleware(rc.TokenUseCase, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/auth")
	{
		issueChain := make([]gin.HandlerFunc, 0, 2)
		if rc.Config.RateLimitTokenEnabled {
			issueChain = append(issueChain, authHTTP.TokenRateLimitMiddleware(
				rc.Config.RateLimitTokenRequestsPerSec,
				rc.Config.RateLimitTokenBurst,
				s.logger,
			))
		}
		issueChain = append(issueChain, rc.TokenHandler.IssueTokenHandler)

		auth.POST("/token", issueChain...)
		auth.DELETE("/token", authHTTP.RequireAuthenticated(s.logger), rc.TokenHandler.InvalidateTokenHandler)
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/students",
			authHTTP.RequireAuthority(userDomain.PermissionListStudents, s.logger),
			rc.UserHandler.ListStudentsHandler)
		v1.GET("/instructors",
			authHTTP.RequireAuthority(userDomain.PermissionListInstructors, s.logger),
			rc.UserHandler.ListInstructorsHandler)
		v1.GET("/profiles/:id",
			authHTTP.RequireAuthority(userDomain.PermissionViewProfile, s.logger),
			rc.UserHandler.GetProfileHandler)

		courses := v1.Group("/courses")
		{
			courses.GET("", rc.CourseHandler.ListCoursesHandler)
			courses.GET("/:id", rc.CourseHandler.GetCourseHandler)
			courses.POST("",
				authHTTP.RequireAuthority(userDomain.PermissionCreateCourse, s.logger),
				rc.CourseHandler.CreateCourseHandler)
			courses.PUT("/:id",
				authHTTP.RequireAuthority(userDomain.PermissionUpdateCourse, s.logger),
				rc.CourseHandler.UpdateCourseHandler)
			courses.POST("/:id/play",
				authHTTP.RequireAuthority(userDomain.PermissionPlayCourse, s.logger),
				rc.CourseHandler.PlayCourseHandler)
			courses.POST("/:id/enroll",
				authHTTP.RequireAuthenticated(s.logger),
				rc.CourseHandler.EnrollCourseHandler)
		}
	}

	s.router = router
}

// GetHandler returns the configured router, or nil before SetupRouter is called.
// Useful for mounting the route table on an httptest server.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
// The database connection is verified with a short ping.
func (s *Server) readinessHandler(c *gin.Context) {
	components := map[string]string{"database": "ok"}
	status := "ready"
	code := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter before Start")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
