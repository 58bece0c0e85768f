package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin      = "administrador"
	RoleTechnician = "tecnico"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrSelfDelete = errors.New("cannot delete own account")

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTechnician
}

// User models an authenticated actor. Accounts are created by an
// administrator and only ever removed by an explicit delete.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
