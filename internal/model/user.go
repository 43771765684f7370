package model

import "time"

// Tier is the access level of a user account.
type Tier string

const (
	TierFree    Tier = "FREE"
	TierPremium Tier = "PREMIUM"
)

// User represents a revision-tool user (OPJ candidate).
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Tier         Tier       `json:"tier"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsPremium reports whether the user currently has premium access.
func (u *User) IsPremium(now time.Time) bool {
	return u.Tier == TierPremium && (u.PremiumUntil == nil || u.PremiumUntil.After(now))
}

// UserLoginRequest is the payload for user authentication.
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// RegisterUserRequest is the payload for creating a new user account.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}
