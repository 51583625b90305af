// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/courses/internal/auth/domain"
	customValidation "github.com/allisson/courses/internal/validation"
)

// IssueTokenRequest contains the form-encoded credentials for token issuance.
type IssueTokenRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.Username,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 255),
		),
	)
}

// ToIssueTokenInput converts the request to the use case input.
func (r *IssueTokenRequest) ToIssueTokenInput() *authDomain.IssueTokenInput {
	return &authDomain.IssueTokenInput{
		Username: r.Username,
		Password: r.Password,
	}
}
