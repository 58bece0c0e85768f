package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
	"github.com/osworks/service-orders/internal/pkg/hasher"
	"github.com/osworks/service-orders/internal/pkg/tokens"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string, active bool) *domain.User {
	t.Helper()
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return repo.seed(&domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
		CreatedAt:    time.Now().UTC(),
	})
}

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo, *memTokenStore) {
	t.Helper()
	repo := newStubUserRepo()
	store := newMemTokenStore()
	issuer := tokens.NewIssuer("test-secret", time.Hour)
	svc := NewAuthService(repo, store, issuer, nil, zerolog.Nop())
	return svc, repo, store
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, store := newAuthFixture(t)
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token")
	}
	if result.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s expiry, got %d", result.ExpiresIn)
	}
	if result.User == nil || result.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	ok, err := store.IsValid(context.Background(), result.Token)
	if err != nil || !ok {
		t.Fatalf("issued token must be recorded as valid, got ok=%v err=%v", ok, err)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUser(t, repo, "alice", "s3cret", domain.RoleTechnician, true)
	seedUser(t, repo, "bob", "pass", domain.RoleTechnician, false)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "whatever"},
		{"wrong password", "alice", "wrong"},
		{"inactive account", "bob", "pass"},
		{"empty username", "", "pass"},
		{"empty password", "alice", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tc.username, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Login_RecordFailureAborts(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemTokenStore()
	store.recordErr = errStoreDown
	svc := NewAuthService(repo, store, tokens.NewIssuer("test-secret", time.Hour), nil, zerolog.Nop())
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	_, err := svc.Login(context.Background(), "alice", "s3cret")
	if err == nil {
		t.Fatalf("expected login to fail when the store write fails")
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not masquerade as a credential failure")
	}
	if !strings.Contains(err.Error(), "record token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemTokenStore()
	throttle := newStubThrottle(3)
	svc := NewAuthService(repo, store, tokens.NewIssuer("test-secret", time.Hour), throttle, zerolog.Nop())
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Budget exhausted: even the right password is rejected.
	if _, err := svc.Login(context.Background(), "alice", "s3cret"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_ClearsThrottleOnSuccess(t *testing.T) {
	repo := newStubUserRepo()
	store := newMemTokenStore()
	throttle := newStubThrottle(3)
	svc := NewAuthService(repo, store, tokens.NewIssuer("test-secret", time.Hour), throttle, zerolog.Nop())
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	_, _ = svc.Login(context.Background(), "alice", "wrong")
	_, _ = svc.Login(context.Background(), "alice", "wrong")

	if _, err := svc.Login(context.Background(), "alice", "s3cret"); err != nil {
		t.Fatalf("login below the budget should succeed: %v", err)
	}
	if throttle.failures["alice"] != 0 {
		t.Fatalf("expected failure counter reset, got %d", throttle.failures["alice"])
	}
}

func TestAuthService_Authenticate_Lifecycle(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user %q", user.Username)
	}

	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("second logout must succeed: %v", err)
	}
}

func TestAuthService_Authenticate_UnrecordedToken(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	// A correctly signed token that never passed through Login: the store
	// has no record, so it must be rejected.
	forged, _, err := tokens.NewIssuer("test-secret", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), forged); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unrecorded token, got %v", err)
	}
}

func TestAuthService_Authenticate_DeactivatedUser(t *testing.T) {
	svc, repo, _ := newAuthFixture(t)
	user := seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	inactive := false
	if _, err := repo.Update(context.Background(), user.ID, ports.UpdateUserFields{Active: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), result.Token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for deactivated account, got %v", err)
	}
}

func TestAuthService_RevokeAndValidate_Concurrent(t *testing.T) {
	svc, repo, store := newAuthFixture(t)
	seedUser(t, repo, "alice", "s3cret", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Logout(context.Background(), result.Token)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.IsValid(context.Background(), result.Token)
		}()
	}
	wg.Wait()

	// After revocation settles, the token must read as invalid.
	ok, err := store.IsValid(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("isvalid: %v", err)
	}
	if ok {
		t.Fatalf("revoked token still reported valid")
	}
}
