package dto

import (
	"time"

	"github.com/weebHarsh/ticketing-portal-sub000/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
	GroupID  *int64          `json:"group_id"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateUserRequest payload for admin edits.
type UpdateUserRequest struct {
	FullName *string          `json:"full_name"`
	Role     *domain.UserRole `json:"role"`
	GroupID  *int64           `json:"group_id"`
}

// UserResponse is the public account view.
type UserResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name"`
	Role      domain.UserRole `json:"role"`
	GroupID   *int64          `json:"group_id"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// NotificationResponse is one inbox row.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	TicketID  *int64    `json:"ticket_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
