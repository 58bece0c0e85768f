package domain

import (
	"errors"
	"time"
)

var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenExists = errors.New("token already recorded")

// TokenRecord is the server-side entry backing a bearer token. It is
// created at login, mutated exactly once when revoked, and never
// physically deleted — expired and revoked records remain as soft state.
type TokenRecord struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"is_revoked"`
}

// Usable reports whether the record still authorizes requests at instant
// now. A missing record is handled by the store, not here.
func (r TokenRecord) Usable(now time.Time) bool {
	return !r.Revoked && now.Before(r.ExpiresAt)
}
