package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB
// connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a
// ping, and returns both the client and the selected database. A default
// timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on for
// their duplicate-key error mapping. Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparseUnique := options.Index().SetUnique(true).SetSparse(true)

	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{userCollection, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique}},
		{userCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: sparseUnique}},
		{tokenCollection, mongo.IndexModel{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique}},
		{equipmentCollection, mongo.IndexModel{Keys: bson.D{{Key: "serial_number", Value: 1}}, Options: sparseUnique}},
		{responseCollection, mongo.IndexModel{Keys: bson.D{{Key: "service_order_id", Value: 1}, {Key: "checklist_item_id", Value: 1}}, Options: unique}},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
	}
	return nil
}
