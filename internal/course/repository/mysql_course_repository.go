package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/courses/internal/course/domain"
	"github.com/allisson/courses/internal/database"

	apperrors "github.com/allisson/courses/internal/errors"
)

const mysqlCourseColumns = `id, name, category, topic, hours, rating, created_by, created_at`

// MySQLCourseRepository handles course persistence for MySQL
type MySQLCourseRepository struct {
	db *sql.DB
}

// NewMySQLCourseRepository creates a new MySQLCourseRepository
func NewMySQLCourseRepository(db *sql.DB) *MySQLCourseRepository {
	return &MySQLCourseRepository{
		db: db,
	}
}

// Create inserts a new course
func (r *MySQLCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO courses (id, name, category, topic, hours, rating, created_by, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := course.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx, query,
		uuidBytes, course.Name, course.Category, course.Topic,
		course.Hours, course.Rating, course.CreatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create course")
	}

	return nil
}

// GetByID retrieves a course by ID with enrollments loaded
func (r *MySQLCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCourseColumns + ` FROM courses WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	course, err := r.scanCourse(querier.QueryRowContext(ctx, query, uuidBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get course by id")
	}

	if err := r.loadEnrollments(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// Update modifies the mutable fields of a course
func (r *MySQLCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE courses SET name = ?, category = ?, topic = ?, hours = ?, rating = ?
			  WHERE id = ?`

	uuidBytes, err := course.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(
		ctx, query,
		course.Name, course.Category, course.Topic, course.Hours, course.Rating, uuidBytes,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update course")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrCourseNotFound
	}

	return nil
}

// List retrieves courses ordered by name
func (r *MySQLCourseRepository) List(ctx context.Context, offset, limit int) ([]*domain.Course, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCourseColumns + ` FROM courses ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list courses")
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		course, err := r.scanCourse(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan course")
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate courses")
	}

	for _, course := range courses {
		if err := r.loadEnrollments(ctx, course); err != nil {
			return nil, err
		}
	}

	return courses, nil
}

// Enroll records a student enrollment in a course
func (r *MySQLCourseRepository) Enroll(ctx context.Context, courseID uuid.UUID, username string) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO course_enrollments (course_id, username, created_at) VALUES (?, ?, NOW())`

	uuidBytes, err := courseID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, username)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAlreadyEnrolled
		}
		return apperrors.Wrap(err, "failed to enroll student")
	}

	return nil
}

func (r *MySQLCourseRepository) scanCourse(row rowScanner) (*domain.Course, error) {
	var course domain.Course
	var idBytes []byte
	err := row.Scan(
		&idBytes, &course.Name, &course.Category, &course.Topic,
		&course.Hours, &course.Rating, &course.CreatedBy, &course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert bytes back to UUID
	if err := course.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &course, nil
}

func (r *MySQLCourseRepository) loadEnrollments(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT username FROM course_enrollments WHERE course_id = ? ORDER BY username`

	uuidBytes, err := course.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, uuidBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to load course enrollments")
	}
	defer rows.Close()

	course.EnrolledStudents = nil
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return apperrors.Wrap(err, "failed to scan enrollment")
		}
		course.EnrolledStudents = append(course.EnrolledStudents, username)
	}

	return apperrors.Wrap(rows.Err(), "failed to iterate enrollments")
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
