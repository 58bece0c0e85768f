package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osworks/service-orders/internal/core/domain"
)

const photoCollection = "order_photos"

// PhotoRepository implements ports.PhotoRepository using MongoDB.
type PhotoRepository struct {
	coll *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{coll: db.Collection(photoCollection)}
}

type mongoPhoto struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OrderID    string             `bson:"service_order_id"`
	URL        string             `bson:"photo_url"`
	UploadedAt time.Time          `bson:"uploaded_at"`
}

func (mp mongoPhoto) toDomain() *domain.Photo {
	return &domain.Photo{
		ID:         mp.ID.Hex(),
		OrderID:    mp.OrderID,
		URL:        mp.URL,
		UploadedAt: mp.UploadedAt.UTC(),
	}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	doc := mongoPhoto{
		OrderID:    photo.OrderID,
		URL:        photo.URL,
		UploadedAt: photo.UploadedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}

	created := *photo
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*domain.Photo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPhotoNotFound
	}
	var mp mongoPhoto
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PhotoRepository) ListByOrder(ctx context.Context, orderID string) ([]*domain.Photo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"service_order_id": orderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer cursor.Close(ctx)

	var photos []*domain.Photo
	for cursor.Next(ctx) {
		var mp mongoPhoto
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		photos = append(photos, mp.toDomain())
	}
	return photos, cursor.Err()
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPhotoNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
