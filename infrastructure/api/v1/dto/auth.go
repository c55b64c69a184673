package dto

import (
	"time"

	"github.com/inkwell-shop/storefront/domain/account"
)

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

// LoginResponse is a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Token   string `json:"token,omitempty"`
}

// ProfileResponse is the body of GET /auth/me.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	UserType  string    `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewProfileResponse converts an account.
func NewProfileResponse(u account.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		UserType:  u.UserType(),
		CreatedAt: u.CreatedAt(),
	}
}

// ResetRequest is the body of POST /auth/password-reset/request.
type ResetRequest struct {
	Email    string `json:"email" validate:"required"`
	UserType string `json:"userType" validate:"required"`
}

// ResetConfirmRequest is the body of POST /auth/password-reset/confirm.
type ResetConfirmRequest struct {
	Email       string `json:"email" validate:"required"`
	UserType    string `json:"userType" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// MessageResponse carries a human readable status.
type MessageResponse struct {
	Message string `json:"message"`
}
