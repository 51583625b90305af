// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	userDomain "github.com/allisson/courses/internal/user/domain"
)

// UserResponse represents a user in API responses. The password hash and
// token fields never leave the server.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsersResponse represents a paginated list of users.
type ListUsersResponse struct {
	Users  []UserResponse `json:"users"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt,
	}
}

// MapUsersToListResponse converts domain users to a paginated API response.
func MapUsersToListResponse(users []*userDomain.User, offset, limit int) ListUsersResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, MapUserToResponse(user))
	}

	return ListUsersResponse{
		Users:  responses,
		Offset: offset,
		Limit:  limit,
	}
}
