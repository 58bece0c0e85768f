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

const (
	clientCollection    = "clients"
	equipmentCollection = "equipments"
)

// ClientRepository implements ports.ClientRepository using MongoDB.
type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientCollection)}
}

type mongoClient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Address   string             `bson:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mc mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		Email:     mc.Email,
		Phone:     mc.Phone,
		Address:   mc.Address,
		CreatedAt: mc.CreatedAt.UTC(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	doc := mongoClient{
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Address:   client.Address,
		CreatedAt: client.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *client
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClientNotFound
	}
	var mc mongoClient
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	for cursor.Next(ctx) {
		var mc mongoClient
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode client: %w", err)
		}
		clients = append(clients, mc.toDomain())
	}
	return clients, cursor.Err()
}

// EquipmentRepository implements ports.EquipmentRepository using MongoDB.
type EquipmentRepository struct {
	coll *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{coll: db.Collection(equipmentCollection)}
}

type mongoEquipment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ClientID     string             `bson:"client_id"`
	Type         string             `bson:"type"`
	Brand        string             `bson:"brand,omitempty"`
	Model        string             `bson:"model,omitempty"`
	SerialNumber string             `bson:"serial_number,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (me mongoEquipment) toDomain() *domain.Equipment {
	return &domain.Equipment{
		ID:           me.ID.Hex(),
		ClientID:     me.ClientID,
		Type:         me.Type,
		Brand:        me.Brand,
		Model:        me.Model,
		SerialNumber: me.SerialNumber,
		CreatedAt:    me.CreatedAt.UTC(),
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	doc := mongoEquipment{
		ClientID:     eq.ClientID,
		Type:         eq.Type,
		Brand:        eq.Brand,
		Model:        eq.Model,
		SerialNumber: eq.SerialNumber,
		CreatedAt:    eq.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEquipmentExists
		}
		return nil, fmt.Errorf("insert equipment: %w", err)
	}

	created := *eq
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*domain.Equipment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEquipmentNotFound
	}
	var me mongoEquipment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*domain.Equipment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Equipment
	for cursor.Next(ctx) {
		var me mongoEquipment
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode equipment: %w", err)
		}
		items = append(items, me.toDomain())
	}
	return items, cursor.Err()
}
