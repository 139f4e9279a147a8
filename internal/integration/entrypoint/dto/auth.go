// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/user"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
	InsightDigest bool   `json:"insight_digest"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
	NeedsSetup   bool         `json:"needs_setup"`
}

// TokenResponse is returned by POST /auth/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	NeedsSetup   bool   `json:"needs_setup"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	InsightDigest bool      `json:"insight_digest"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpdateProfileRequest represents the request body for PATCH /users/me.
type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	InsightDigest *bool   `json:"insight_digest,omitempty"`
}

// DeleteAccountRequest represents the request body for DELETE /users/me.
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		Name:          user.Name,
		InsightDigest: user.InsightDigest,
		CreatedAt:     user.CreatedAt,
	}
}

// ToProfileResponse converts a profile output to a UserResponse DTO.
func ToProfileResponse(out *user.ProfileOutput) UserResponse {
	return UserResponse{
		ID:            out.ID.String(),
		Email:         out.Email,
		Name:          out.Name,
		InsightDigest: out.InsightDigest,
		CreatedAt:     out.CreatedAt,
	}
}
