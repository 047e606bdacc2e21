package models

import (
	"time"

	"fintrack-api/internal/entities"
)

// UserResponse is the public view of a user; the password hash never appears.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse represents the response after register or login
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// MeResponse represents the response for the authenticated user lookup
type MeResponse struct {
	User UserResponse `json:"user"`
}
