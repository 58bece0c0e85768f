package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osworks/service-orders/internal/core/domain"
)

const tokenCollection = "auth_tokens"

// TokenStore implements ports.TokenStore using MongoDB. Records are soft
// state: revocation is a single-document update and nothing is ever
// deleted, so a revoke racing a validity check always observes either the
// old or the new document, never a torn one.
type TokenStore struct {
	coll *mongo.Collection
}

func NewTokenStore(db *mongo.Database) *TokenStore {
	return &TokenStore{coll: db.Collection(tokenCollection)}
}

type tokenRecord struct {
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	IssuedAt  time.Time `bson:"issued_at"`
	ExpiresAt time.Time `bson:"expires_at"`
	Revoked   bool      `bson:"is_revoked"`
}

func (s *TokenStore) Record(ctx context.Context, token, userID string, issuedAt, expiresAt time.Time) error {
	doc := tokenRecord{
		Token:     token,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Revoked:   false,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Token strings carry enough entropy that this should never
			// happen; treat it as a fatal uniqueness violation.
			return domain.ErrTokenExists
		}
		return fmt.Errorf("record token: %w", err)
	}
	return nil
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"is_revoked": true}},
	)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	// Zero matches is still success: revoking an unknown token is a no-op.
	return nil
}

func (s *TokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	var rec tokenRecord
	if err := s.coll.FindOne(ctx, bson.M{"token": token}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			// A token without a record is invalid, not merely unknown.
			return false, nil
		}
		return false, fmt.Errorf("find token: %w", err)
	}
	return domain.TokenRecord{
		Token:     rec.Token,
		UserID:    rec.UserID,
		IssuedAt:  rec.IssuedAt,
		ExpiresAt: rec.ExpiresAt,
		Revoked:   rec.Revoked,
	}.Usable(time.Now().UTC()), nil
}
