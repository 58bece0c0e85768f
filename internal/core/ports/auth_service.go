package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// LoginResult is returned by AuthService.Login on success.
type LoginResult struct {
	Token     string
	ExpiresIn int // seconds until the token expires
	User      *domain.User
}

// AuthService authenticates credentials and bearer tokens.
type AuthService interface {
	// Login verifies username+password and issues a recorded token. Every
	// credential failure (unknown user, inactive account, wrong password)
	// surfaces as the single generic domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Authenticate resolves a bearer token to an existing, active user.
	// Any failure surfaces as domain.ErrTokenInvalid.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the token. Idempotent.
	Logout(ctx context.Context, token string) error
}
