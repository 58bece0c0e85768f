package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osworks/service-orders/internal/core/domain"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, expiresAt, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	remaining := time.Until(expiresAt)
	if remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry distance: %v", remaining)
	}

	subject, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestIssuer_DefaultTTL(t *testing.T) {
	issuer := NewIssuer("secret", 0)
	if issuer.TTL() != 30*time.Minute {
		t.Fatalf("expected 30m default, got %v", issuer.TTL())
	}
}

func TestIssuer_Parse_Expired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	// Sign an already-expired token with the same secret.
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Parse(expired); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestIssuer_Parse_WrongSecret(t *testing.T) {
	token, _, err := NewIssuer("secret-a", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestIssuer_Parse_Tampered(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := issuer.Parse(tampered); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestIssuer_Parse_WrongAlgorithm(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := issuer.Parse(unsigned); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for alg=none token, got %v", err)
	}
}

func TestIssuer_Parse_EmptySubject(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, _, err := issuer.Issue("")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Parse(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty subject, got %v", err)
	}
}
