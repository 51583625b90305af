// Package integration provides end-to-end integration tests for the courses API.
// Tests all API endpoints against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/courses/cmd/app/commands"
	"github.com/allisson/courses/internal/app"
	authDTO "github.com/allisson/courses/internal/auth/http/dto"
	"github.com/allisson/courses/internal/config"
	courseDTO "github.com/allisson/courses/internal/course/http/dto"
	"github.com/allisson/courses/internal/testutil"
	userDTO "github.com/allisson/courses/internal/user/http/dto"
)

// seedPassword is the password every seeded user authenticates with.
const seedPassword = "password"

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request with an optional JSON body and bearer
// token, returning the response and body. An empty token means anonymous.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// issueToken posts form-encoded credentials to the token endpoint and returns
// the response status plus the issued access token (empty on failure).
func (ctx *integrationTestContext) issueToken(t *testing.T, username, password string) (int, string) {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequest(
		http.MethodPost,
		ctx.server.URL+"/auth/token",
		strings.NewReader(form.Encode()),
	)
	require.NoError(t, err, "failed to create token request")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform token request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read token response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	if resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, ""
	}

	var response authDTO.IssueTokenResponse
	err = json.Unmarshal(respBody, &response)
	require.NoError(t, err, "failed to unmarshal token response")
	require.NotEmpty(t, response.AccessToken)

	return resp.StatusCode, response.AccessToken
}

// userIDFor resolves the seeded user's ID through the repository layer.
func (ctx *integrationTestContext) userIDFor(t *testing.T, username string) string {
	t.Helper()

	userRepo, err := ctx.container.UserRepository()
	require.NoError(t, err, "failed to get user repository")

	user, err := userRepo.GetByUsername(context.Background(), username)
	require.NoError(t, err, "failed to load seeded user: "+username)

	return user.ID.String()
}

// courseIDFor resolves a seeded course's ID by name through the public catalog.
func (ctx *integrationTestContext) courseIDFor(t *testing.T, name string) string {
	t.Helper()

	resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/courses", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response courseDTO.ListCoursesResponse
	err := json.Unmarshal(body, &response)
	require.NoError(t, err)

	for _, course := range response.Courses {
		if course.Name == name {
			return course.ID
		}
	}

	t.Fatalf("seeded course not found in catalog: %s", name)
	return ""
}

// setupIntegrationTest initializes all components for integration testing.
// The database is migrated, wiped and reseeded with the bundled demo data.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Setup database
	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	// Create configuration
	cfg := &config.Config{
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		AuthMode:             config.AuthModeOpaque,
		AuthTokenExpiration:  time.Hour,
		MetricsNamespace:     "courses_test",
	}

	// Create DI container
	container := app.NewContainer(cfg)

	// Seed the demo users, courses and enrollments
	txManager, err := container.TxManager()
	require.NoError(t, err, "failed to get tx manager")

	userRepo, err := container.UserRepository()
	require.NoError(t, err, "failed to get user repository")

	courseRepo, err := container.CourseRepository()
	require.NoError(t, err, "failed to get course repository")

	err = commands.RunSeed(
		context.Background(),
		txManager,
		userRepo,
		courseRepo,
		container.PasswordService(),
		container.Logger(),
	)
	require.NoError(t, err, "failed to seed demo data")

	// Setup HTTP server
	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	// The SetupRouter has already been called by container.HTTPServer()
	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	// Create test server with the handler
	testServer := httptest.NewServer(handler)

	t.Logf("Integration test setup complete for %s", dbDriver)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		err := ctx.container.Shutdown(context.Background())
		if err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}

	t.Logf("Integration test teardown complete for %s", ctx.dbDriver)
}

// TestIntegration_Health_BasicChecks validates infrastructure health and readiness endpoints.
// Tests health check and database connectivity verification against both PostgreSQL and MySQL.
func TestIntegration_Health_BasicChecks(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			// [1/2] Test GET /health - Health check endpoint
			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "healthy", response["status"])
			})

			// [2/2] Test GET /ready - Readiness check endpoint
			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response struct {
					Status     string            `json:"status"`
					Components map[string]string `json:"components"`
				}
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "ready", response.Status)
				assert.Equal(t, "ok", response.Components["database"])
			})

			t.Logf("All 2 health endpoint tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_Auth_TokenLifecycle tests the complete token lifecycle: issuance
// against seeded credentials, authenticated access, revocation and rejection of
// revoked tokens.
func TestIntegration_Auth_TokenLifecycle(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			var bobToken string
			bobID := ctx.userIDFor(t, "bob")
			kevinID := ctx.userIDFor(t, "kevin")
			_, kevinToken := ctx.issueToken(t, "kevin", seedPassword)

			// [1/8] Test POST /auth/token - Issue token with valid credentials
			t.Run("01_IssueToken", func(t *testing.T) {
				status, token := ctx.issueToken(t, "bob", seedPassword)
				assert.Equal(t, http.StatusCreated, status)
				assert.NotEmpty(t, token)
				bobToken = token
			})

			// [2/8] Test POST /auth/token - Reject invalid credentials
			t.Run("02_IssueToken_WrongPassword", func(t *testing.T) {
				status, token := ctx.issueToken(t, "bob", "wrong-password")
				assert.Equal(t, http.StatusUnauthorized, status)
				assert.Empty(t, token)
			})

			// [3/8] Test GET /v1/profiles/:id - Authenticated access with issued token
			t.Run("03_AuthenticatedRequest", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+bobID, nil, bobToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "bob", response.Username)
				assert.Equal(t, "bob@email.com", response.Email)
				assert.Contains(t, response.Roles, "STUDENT")
			})

			// [4/8] Test POST /auth/token - Reissuing replaces the prior token
			t.Run("04_ReissueInvalidatesPriorToken", func(t *testing.T) {
				staleToken := bobToken

				status, freshToken := ctx.issueToken(t, "bob", seedPassword)
				require.Equal(t, http.StatusCreated, status)
				require.NotEqual(t, staleToken, freshToken)

				// A principal holds at most one active token: the overwritten
				// token is anonymous, the fresh one authenticates.
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+bobID, nil, staleToken)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

				resp, _ = ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+bobID, nil, freshToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				bobToken = freshToken
			})

			// [5/8] Test DELETE /auth/token - Revocation requires authentication
			t.Run("05_InvalidateToken_Anonymous", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodDelete, "/auth/token", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [6/8] Test DELETE /auth/token - Revoke the active token
			t.Run("06_InvalidateToken", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodDelete, "/auth/token", nil, bobToken)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)
			})

			// [7/8] Test GET /v1/profiles/:id - Revoked token is treated as anonymous
			t.Run("07_RevokedTokenRejected", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+bobID, nil, bobToken)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [8/8] Test GET /v1/profiles/:id - Revocation only touches the caller
			t.Run("08_InvalidationIsolation", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+kevinID, nil, kevinToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "kevin", response.Username)
			})

			t.Logf("All 8 auth endpoint tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_Users_DirectoryAndProfiles tests the user directory and profile
// endpoints: role-gated listings and the fine-grained profile visibility rules.
func TestIntegration_Users_DirectoryAndProfiles(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			_, bobToken := ctx.issueToken(t, "bob", seedPassword)
			_, gruToken := ctx.issueToken(t, "gru", seedPassword)
			_, adminToken := ctx.issueToken(t, "admin", seedPassword)

			// [1/8] Test GET /v1/students - Anonymous callers are rejected
			t.Run("01_ListStudents_Anonymous", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/students", nil, "")
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			})

			// [2/8] Test GET /v1/students - Students lack the LIST_STUDENTS authority
			t.Run("02_ListStudents_StudentForbidden", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/students", nil, bobToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [3/8] Test GET /v1/students - Instructors list the student directory
			t.Run("03_ListStudents_Instructor", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/students", nil, gruToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.ListUsersResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Users, 3, "should list the three seeded students")
			})

			// [4/8] Test GET /v1/instructors - Instructors lack the LIST_INSTRUCTORS authority
			t.Run("04_ListInstructors_InstructorForbidden", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/instructors", nil, gruToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [5/8] Test GET /v1/instructors - Admins list the instructor directory
			t.Run("05_ListInstructors_Admin", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/instructors", nil, adminToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.ListUsersResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Users, 2, "should list the two seeded instructors")
			})

			// [6/8] Test GET /v1/profiles/:id - A student views their own profile
			t.Run("06_ViewOwnProfile", func(t *testing.T) {
				bobID := ctx.userIDFor(t, "bob")
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+bobID, nil, bobToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "bob", response.Username)
			})

			// [7/8] Test GET /v1/profiles/:id - Instructor profiles are visible to everyone
			t.Run("07_ViewInstructorProfile", func(t *testing.T) {
				gruID := ctx.userIDFor(t, "gru")
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+gruID, nil, bobToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response userDTO.UserResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "gru", response.Username)
				assert.Contains(t, response.Roles, "INSTRUCTOR")
			})

			// [8/8] Test GET /v1/profiles/:id - Other student profiles are hidden
			t.Run("08_ViewOtherStudentProfile_Forbidden", func(t *testing.T) {
				kevinID := ctx.userIDFor(t, "kevin")
				resp, _ := ctx.makeRequest(t, http.MethodGet, "/v1/profiles/"+kevinID, nil, bobToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Logf("All 8 user endpoint tests passed for %s", tc.dbDriver)
		})
	}
}

// TestIntegration_Courses_CompleteFlow tests the course catalog complete lifecycle:
// public browsing, ownership-gated authoring, enrollment and playback access.
func TestIntegration_Courses_CompleteFlow(t *testing.T) {
	// Skip if short mode (integration tests can be slow)
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			_, bobToken := ctx.issueToken(t, "bob", seedPassword)
			_, kevinToken := ctx.issueToken(t, "kevin", seedPassword)
			_, gruToken := ctx.issueToken(t, "gru", seedPassword)
			_, lucyToken := ctx.issueToken(t, "lucy", seedPassword)

			newCourseRequest := courseDTO.CourseRequest{
				Name:     "Advanced Go Concurrency",
				Category: "Programming",
				Topic:    "Go",
				Hours:    6.5,
				Rating:   4.5,
			}

			var newCourseID string

			// [1/10] Test GET /v1/courses - Public catalog listing
			t.Run("01_ListCourses_Anonymous", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/courses", nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response courseDTO.ListCoursesResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Len(t, response.Courses, 4, "should list the four seeded courses")
			})

			// [2/10] Test GET /v1/courses/:id - Public course detail with enrollments
			t.Run("02_GetCourse_Anonymous", func(t *testing.T) {
				courseID := ctx.courseIDFor(t, "Spring Boot Fundamentals")
				resp, body := ctx.makeRequest(t, http.MethodGet, "/v1/courses/"+courseID, nil, "")
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response courseDTO.CourseResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Spring Boot Fundamentals", response.Name)
				assert.Equal(t, "gru", response.CreatedBy)
				assert.ElementsMatch(t, []string{"bob", "kevin", "stuart"}, response.EnrolledStudents)
			})

			// [3/10] Test POST /v1/courses - Students lack the CREATE_COURSE authority
			t.Run("03_CreateCourse_StudentForbidden", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/courses", newCourseRequest, bobToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [4/10] Test POST /v1/courses - Instructor creates a course
			t.Run("04_CreateCourse_Instructor", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/courses", newCourseRequest, gruToken)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				var response courseDTO.CourseResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.NotEmpty(t, response.ID)
				assert.Equal(t, "Advanced Go Concurrency", response.Name)
				assert.Equal(t, "gru", response.CreatedBy, "caller is recorded as owner")
				assert.Empty(t, response.EnrolledStudents)

				newCourseID = response.ID
			})

			// [5/10] Test PUT /v1/courses/:id - Only the owning instructor may update
			t.Run("05_UpdateCourse_NonOwnerForbidden", func(t *testing.T) {
				updated := newCourseRequest
				updated.Rating = 5

				resp, _ := ctx.makeRequest(t, http.MethodPut, "/v1/courses/"+newCourseID, updated, lucyToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [6/10] Test PUT /v1/courses/:id - The owner updates the course
			t.Run("06_UpdateCourse_Owner", func(t *testing.T) {
				updated := newCourseRequest
				updated.Rating = 5
				updated.Hours = 8

				resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/courses/"+newCourseID, updated, gruToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response courseDTO.CourseResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, float64(5), response.Rating)
				assert.Equal(t, float64(8), response.Hours)
			})

			// [7/10] Test POST /v1/courses/:id/enroll - A student enrolls
			t.Run("07_Enroll_Student", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/courses/"+newCourseID+"/enroll", nil, bobToken)
				assert.Equal(t, http.StatusNoContent, resp.StatusCode)
				assert.Empty(t, body)
			})

			// [8/10] Test POST /v1/courses/:id/enroll - Duplicate enrollment conflicts
			t.Run("08_Enroll_DuplicateConflict", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/courses/"+newCourseID+"/enroll", nil, bobToken)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)
			})

			// [9/10] Test POST /v1/courses/:id/enroll - Instructors cannot enroll
			t.Run("09_Enroll_InstructorForbidden", func(t *testing.T) {
				resp, _ := ctx.makeRequest(t, http.MethodPost, "/v1/courses/"+newCourseID+"/enroll", nil, lucyToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			// [10/10] Test POST /v1/courses/:id/play - Playback requires enrollment
			t.Run("10_Play_EnrollmentGate", func(t *testing.T) {
				// bob enrolled in step 7
				resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/courses/"+newCourseID+"/play", nil, bobToken)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response courseDTO.CourseResponse
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Advanced Go Concurrency", response.Name)
				assert.Contains(t, response.EnrolledStudents, "bob")

				// kevin never enrolled in this course
				resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/courses/"+newCourseID+"/play", nil, kevinToken)
				assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			})

			t.Logf("All 10 course endpoint tests passed for %s", tc.dbDriver)
		})
	}
}
