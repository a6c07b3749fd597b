package dto

import (
	"time"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest payload for self-service edits.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	IsAdmin            bool      `json:"is_admin"`
	Avatar             string    `json:"avatar,omitempty"`
	HasClaimedFreePlan bool      `json:"has_claimed_free_plan"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user, dropping the password hash.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		IsAdmin:            user.IsAdmin,
		Avatar:             user.Avatar,
		HasClaimedFreePlan: user.HasClaimedFreePlan,
		CreatedAt:          user.CreatedAt,
	}
}
