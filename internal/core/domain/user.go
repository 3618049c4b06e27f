package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

// User models a registered account. The password is stored only as a bcrypt
// hash and is never serialized.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	// Reset fields are set on forgot-password and cleared when the reset
	// completes or the expiry check fails.
	ResetToken        string    `json:"-"`
	ResetTokenExpires time.Time `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ResetTokenExpired reports whether the stored reset token is past its expiry.
// A zero expiry counts as expired.
func (u *User) ResetTokenExpired(now time.Time) bool {
	return u.ResetTokenExpires.IsZero() || u.ResetTokenExpires.Before(now)
}
