package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account and its credit ledger. LifetimeCredits is
// monotonic and never decremented; WithdrawableCredits moves only via
// donation approval (up) and withdrawal debits (down).
type User struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Email               string    `json:"email" db:"email"`
	Phone               string    `json:"phone" db:"phone"`
	PasswordHash        string    `json:"-" db:"password_hash"`
	Role                string    `json:"role" db:"role"`
	TotalCredits        int       `json:"total_credits" db:"total_credits"`
	LifetimeCredits     int       `json:"lifetime_credits" db:"lifetime_credits"`
	WithdrawableCredits int       `json:"withdrawable_credits" db:"withdrawable_credits"`
	TotalDonations      int       `json:"total_donations" db:"total_donations"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the API request for account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,min=7,max=20"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the API request for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the API response for register/login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
