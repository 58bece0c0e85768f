// Package tokens implements signed bearer token issuance and verification.
//
// Parse is deliberately pure: it checks the signature and the embedded
// expiry but never consults the token store. Revocation is layered on top
// by the auth service, which does require a lookup.
package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osworks/service-orders/internal/core/domain"
)

const defaultTTL = 30 * time.Minute

// Issuer builds and verifies HS256-signed tokens carrying a subject claim
// and an absolute expiry.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer with the given signing secret and token
// lifetime. A non-positive ttl falls back to 30 minutes.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for subject, valid from now until now+ttl. It
// returns the token string and the absolute expiry instant.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and structural validity of token and
// returns the embedded subject. Expired tokens are rejected here,
// independent of the token store's own expiry bookkeeping. Any failure
// surfaces as domain.ErrTokenInvalid.
func (i *Issuer) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
