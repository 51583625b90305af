// Package repository provides data persistence implementations for course entities.
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

const postgresqlCourseColumns = `id, name, category, topic, hours, rating, created_by, created_at`

// PostgreSQLCourseRepository handles course persistence for PostgreSQL
type PostgreSQLCourseRepository struct {
	db *sql.DB
}

// NewPostgreSQLCourseRepository creates a new PostgreSQLCourseRepository
func NewPostgreSQLCourseRepository(db *sql.DB) *PostgreSQLCourseRepository {
	return &PostgreSQLCourseRepository{
		db: db,
	}
}

// Create inserts a new course
func (r *PostgreSQLCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO courses (id, name, category, topic, hours, rating, created_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	_, err := querier.ExecContext(
		ctx, query,
		course.ID, course.Name, course.Category, course.Topic,
		course.Hours, course.Rating, course.CreatedBy,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create course")
	}

	return nil
}

// GetByID retrieves a course by ID with enrollments loaded
func (r *PostgreSQLCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlCourseColumns + ` FROM courses WHERE id = $1`

	course, err := r.scanCourse(querier.QueryRowContext(ctx, query, id))
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
func (r *PostgreSQLCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE courses SET name = $1, category = $2, topic = $3, hours = $4, rating = $5
			  WHERE id = $6`

	result, err := querier.ExecContext(
		ctx, query,
		course.Name, course.Category, course.Topic, course.Hours, course.Rating, course.ID,
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
func (r *PostgreSQLCourseRepository) List(ctx context.Context, offset, limit int) ([]*domain.Course, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlCourseColumns + ` FROM courses ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
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
func (r *PostgreSQLCourseRepository) Enroll(ctx context.Context, courseID uuid.UUID, username string) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO course_enrollments (course_id, username, created_at) VALUES ($1, $2, NOW())`

	_, err := querier.ExecContext(ctx, query, courseID, username)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAlreadyEnrolled
		}
		return apperrors.Wrap(err, "failed to enroll student")
	}

	return nil
}

func (r *PostgreSQLCourseRepository) scanCourse(row rowScanner) (*domain.Course, error) {
	var course domain.Course
	err := row.Scan(
		&course.ID, &course.Name, &course.Category, &course.Topic,
		&course.Hours, &course.Rating, &course.CreatedBy, &course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *PostgreSQLCourseRepository) loadEnrollments(ctx context.Context, course *domain.Course) error {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT username FROM course_enrollments WHERE course_id = $1 ORDER BY username`

	rows, err := querier.QueryContext(ctx, query, course.ID)
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

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
