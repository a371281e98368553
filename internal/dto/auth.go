package dto

import "github.com/maestre-ai/maestre-api/internal/models"

// SignupRequest carries the fields needed to register a teacher account.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Region    string `json:"region"`
	City      string `json:"city"`
}

// SigninRequest authenticates by email or username.
type SigninRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// UpdateUserRequest holds optional profile mutations.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Region    *string `json:"region"`
	City      *string `json:"city"`
	Password  *string `json:"password" validate:"omitempty,min=8"`
}

// AuthResponse is returned after a successful signup or signin.
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	User      models.UserInfo `json:"user"`
}

// CheckRoleResponse reports the authenticated user's role.
type CheckRoleResponse struct {
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
