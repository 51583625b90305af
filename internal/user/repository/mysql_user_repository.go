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

const mysqlUserColumns = `id, username, email, password_hash, token_hash, token_expires_at, created_at`

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user together with its role assignments
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, password_hash, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		// Check for unique constraint violation (duplicate username or email)
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "user already exists")
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	for _, role := range user.Roles {
		roleQuery := `INSERT INTO user_roles (user_id, role) VALUES (?, ?)`
		if _, err := querier.ExecContext(ctx, roleQuery, uuidBytes, string(role)); err != nil {
			return apperrors.Wrap(err, "failed to assign user role")
		}
	}

	return nil
}

// GetByID retrieves a user by ID with roles loaded
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, uuidBytes))
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
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE LOWER(username) = LOWER(?)`

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
// given hash. Only a token whose stored expiry is in the future matches.
func (r *MySQLUserRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users
			  WHERE token_hash = ? AND token_expires_at > NOW()`

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
func (r *MySQLUserRepository) UpdateToken(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET token_hash = ?, token_expires_at = ? WHERE id = ?`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, user.TokenHash, user.TokenExpiresAt, uuidBytes)
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
func (r *MySQLUserRepository) ClearToken(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET token_hash = NULL, token_expires_at = NULL WHERE id = ?`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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
func (r *MySQLUserRepository) ListByRole(
	ctx context.Context,
	role domain.Role,
	offset, limit int,
) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT u.id, u.username, u.email, u.password_hash, u.token_hash, u.token_expires_at, u.created_at
			  FROM users u
			  INNER JOIN user_roles ur ON ur.user_id = u.id
			  WHERE ur.role = ?
			  ORDER BY u.username
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, string(role), limit, offset)
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

func (r *MySQLUserRepository) scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	err := row.Scan(
		&idBytes, &user.Username, &user.Email, &user.PasswordHash,
		&user.TokenHash, &user.TokenExpiresAt, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Convert bytes back to UUID
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &user, nil
}

func (r *MySQLUserRepository) loadRoles(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, uuidBytes)
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
