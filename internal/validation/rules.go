// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/courses/internal/errors"
)

var (
	// usernameRegex restricts usernames to letters, digits, dots, hyphens and underscores.
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Username validates that a string is a well-formed username.
var Username = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_username_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if len(s) > 64 {
		return validation.NewError("validation_username_length", "must be at most 64 characters")
	}
	if !usernameRegex.MatchString(s) {
		return validation.NewError(
			"validation_username",
			"must contain only letters, digits, dots, hyphens and underscores",
		)
	}
	return nil
})
