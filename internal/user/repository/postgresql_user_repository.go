// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/courses/internal/database"
	"github.com/allisson/courses/internal/user/domain"

	apperrors "github.com/allisson/courses/internal/errors"
)

const postgresqlUserColumns = `id, username, email, password_hash, token_hash, token_expires_at, created_at`

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

// Create inserts a new user together with its role assignments
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		// Check for unique constraint violation (duplicate username or email)
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "user already exists")
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	for _, role := range user.Roles {
		roleQuery := `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`
		if _, err := querier.ExecContext(ctx, roleQuery, user.ID, string(role)); err != nil {
			return apperrors.Wrap(err, "failed to assign user role")
		}
	}

	return nil
}

// GetByID retrieves a user by ID with roles loaded
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlUserColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username with roles loaded.
// The lookup is case-insensitive.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlUserColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByTokenHash retrieves the user holding an active opaque token with the
// given hash. Only a token whose stored expiry is in the future matches, so
// expired tokens behave exactly like unknown tokens.
func (r *PostgreSQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + postgresqlUserColumns + ` FROM users
			  WHERE token_hash = $1 AND token_expires_at > NOW()`

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by token hash")
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateToken stores the user's opaque token hash and expiry in a single
// atomic update, overwriting any previous pair
func (r *PostgreSQLUserRepository) UpdateToken(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET token_hash = $1, token_expires_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, user.TokenHash, user.TokenExpiresAt, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ClearToken removes the user's opaque token pair
func (r *PostgreSQLUserRepository) ClearToken(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET token_hash = NULL, token_expires_at = NULL WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to clear user token")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ListByRole retrieves users holding the given role ordered by username
func (r *PostgreSQLUserRepository) ListByRole(
	ctx context.Context,
	role domain.Role,
	offset, limit int,
) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.token_hash, u.token_expires_at, u.created_at
			  FROM users u
			  INNER JOIN user_roles ur ON ur.user_id = u.id
			  WHERE ur.role = $1
			  ORDER BY u.username
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, string(role), offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users by role")
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}

	for _, user := range users {
		if err := r.loadRoles(ctx, user); err != nil {
			return nil, err
		}
	}

	return users, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgreSQLUserRepository) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.TokenHash, &user.TokenExpiresAt, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgreSQLUserRepository) loadRoles(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`

	rows, err := querier.QueryContext(ctx, query, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to load user roles")
	}
	defer rows.Close()

	user.Roles = nil
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return apperrors.Wrap(err, "failed to scan user role")
		}
		user.Roles = append(user.Roles, domain.Role(role))
	}

	return apperrors.Wrap(rows.Err(), "failed to iterate user roles")
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
