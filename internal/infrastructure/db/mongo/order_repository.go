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
	"github.com/osworks/service-orders/internal/core/ports"
)

const orderCollection = "service_orders"

// OrderRepository implements ports.OrderRepository using MongoDB.
type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(orderCollection)}
}

type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientID    string             `bson:"client_id"`
	EquipmentID string             `bson:"equipment_id"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Activities  string             `bson:"activities_description,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mo mongoOrder) toDomain() *domain.ServiceOrder {
	return &domain.ServiceOrder{
		ID:          mo.ID.Hex(),
		ClientID:    mo.ClientID,
		EquipmentID: mo.EquipmentID,
		UserID:      mo.UserID,
		Title:       mo.Title,
		Description: mo.Description,
		Activities:  mo.Activities,
		Status:      domain.OrderStatus(mo.Status),
		CreatedAt:   mo.CreatedAt.UTC(),
		UpdatedAt:   mo.UpdatedAt.UTC(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	doc := mongoOrder{
		ClientID:    order.ClientID,
		EquipmentID: order.EquipmentID,
		UserID:      order.UserID,
		Title:       order.Title,
		Description: order.Description,
		Activities:  order.Activities,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}
	var mo mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mo); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.ServiceOrder, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.ServiceOrder
	for cursor.Next(ctx) {
		var mo mongoOrder
		if err := cursor.Decode(&mo); err != nil {
			return nil, 0, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, mo.toDomain())
	}
	return orders, total, cursor.Err()
}

func (r *OrderRepository) Update(ctx context.Context, id string, fields ports.UpdateOrderFields) (*domain.ServiceOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Activities != nil {
		set["activities_description"] = *fields.Activities
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}
	if fields.UserID != nil {
		set["user_id"] = *fields.UserID
	}

	var mo mongoOrder
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return mo.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
