package ports

import (
	"context"
	"time"
)

// TokenStore persists issued bearer tokens and answers whether a given
// token is currently valid. Records are soft state: revocation flips a
// flag and expiry is checked on read, nothing is ever deleted.
type TokenStore interface {
	// Record persists a new, non-revoked token record. A token string
	// collision is a fatal uniqueness violation (domain.ErrTokenExists).
	Record(ctx context.Context, token, userID string, issuedAt, expiresAt time.Time) error
	// Revoke marks the matching record revoked. Revoking a token that was
	// never recorded, or twice, is a no-op success.
	Revoke(ctx context.Context, token string) error
	// IsValid reports false when no record exists, the record is revoked,
	// or the stored expiry has passed.
	IsValid(ctx context.Context, token string) (bool, error)
}
