package model

import "time"

// User represents a platform account (student or staff, depending on the
// attached access level).
type User struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	AccessLevelID int       `json:"access_level_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6,max=72"`
	AccessLevelID int    `json:"access_level_id" binding:"required,min=1"`
}

// UpdateUserRequest is the payload for updating a user account.
type UpdateUserRequest struct {
	Name          string `json:"name" binding:"omitempty,min=2,max=255"`
	Email         string `json:"email" binding:"omitempty,email"`
	Password      string `json:"password" binding:"omitempty,min=6,max=72"`
	AccessLevelID int    `json:"access_level_id" binding:"omitempty,min=1"`
}
