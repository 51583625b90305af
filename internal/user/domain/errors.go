package domain

import (
	"github.com/allisson/courses/internal/errors"
)

// User domain errors.
var (
	// ErrUserNotFound indicates a user with the specified ID or username was not found.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")
)
