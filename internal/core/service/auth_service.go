package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
	"github.com/osworks/service-orders/internal/pkg/hasher"
	"github.com/osworks/service-orders/internal/pkg/tokens"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). A nil
// throttle disables throttling entirely.
type LoginThrottle interface {
	// TooMany reports whether username has exceeded the failure budget.
	TooMany(ctx context.Context, username string) (bool, error)
	// NoteFailure records one failed attempt for username.
	NoteFailure(ctx context.Context, username string) error
	// Clear resets the counter after a successful login.
	Clear(ctx context.Context, username string) error
}

// AuthService composes the credential hasher, token issuer, and token
// store into the authentication gateway.
type AuthService struct {
	users    ports.UserRepository
	store    ports.TokenStore
	issuer   *tokens.Issuer
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, store ports.TokenStore, issuer *tokens.Issuer, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, store: store, issuer: issuer, throttle: throttle, log: log}
}

// Login authenticates username+password and issues a recorded token.
// Unknown user, inactive account, and wrong password all collapse into
// the single generic domain.ErrInvalidCredentials so the response never
// reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if locked, err := s.tooManyAttempts(ctx, username); err == nil && locked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, s.failLogin(ctx, username)
		}
		return nil, err
	}

	if !user.Active || !hasher.Verify(password, user.PasswordHash) {
		return nil, s.failLogin(ctx, username)
	}

	token, expiresAt, err := s.issuer.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	// A failed record-write aborts the login: the caller never receives a
	// token the store does not know about.
	if err := s.store.Record(ctx, token, user.ID, time.Now().UTC(), expiresAt); err != nil {
		return nil, fmt.Errorf("record token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Clear(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to clear login throttle")
		}
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int(s.issuer.TTL().Seconds()),
		User:      user,
	}, nil
}

// Authenticate resolves a bearer token to an existing, active user. The
// checks run in order: token store validity (revocation + stored expiry),
// signature and structural expiry, then account resolution. Every failure
// surfaces as domain.ErrTokenInvalid so callers cannot distinguish a
// revoked token from a forged one.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	ok, err := s.store.IsValid(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("token lookup: %w", err)
	}
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	subject, err := s.issuer.Parse(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	// Account state can change after issuance; a token for a deactivated
	// account is unauthorized even though it is cryptographically valid.
	if !user.Active {
		return nil, domain.ErrTokenInvalid
	}

	return user, nil
}

// Logout revokes the token. Revoking twice, or revoking a token that was
// never issued, is a no-op success.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.store.Revoke(ctx, token); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) tooManyAttempts(ctx context.Context, username string) (bool, error) {
	if s.throttle == nil {
		return false, nil
	}
	locked, err := s.throttle.TooMany(ctx, username)
	if err != nil {
		// Throttle outages never block logins.
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed")
		return false, err
	}
	return locked, nil
}

func (s *AuthService) failLogin(ctx context.Context, username string) error {
	if s.throttle != nil {
		if err := s.throttle.NoteFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to note login failure")
		}
	}
	return domain.ErrInvalidCredentials
}
