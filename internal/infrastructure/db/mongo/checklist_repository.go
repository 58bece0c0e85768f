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
	checklistCollection = "checklists"
	itemCollection      = "checklist_items"
	responseCollection  = "checklist_responses"
)

// ChecklistRepository implements ports.ChecklistRepository using MongoDB.
// Checklists, their items, and per-order responses live in separate
// collections; responses are keyed by (order, item) with a unique index
// so saving is a plain upsert.
type ChecklistRepository struct {
	db *mongo.Database
}

func NewChecklistRepository(db *mongo.Database) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

type mongoChecklist struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type mongoItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ChecklistID string             `bson:"checklist_id"`
	Description string             `bson:"description"`
}

type mongoResponse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrderID     string             `bson:"service_order_id"`
	ItemID      string             `bson:"checklist_item_id"`
	Checked     bool               `bson:"is_checked"`
	RespondedAt time.Time          `bson:"responded_at"`
}

func (r *ChecklistRepository) CreateChecklist(ctx context.Context, name string) (*domain.Checklist, error) {
	res, err := r.db.Collection(checklistCollection).InsertOne(ctx, mongoChecklist{Name: name})
	if err != nil {
		return nil, fmt.Errorf("insert checklist: %w", err)
	}
	return &domain.Checklist{
		ID:    res.InsertedID.(primitive.ObjectID).Hex(),
		Name:  name,
		Items: []domain.ChecklistItem{},
	}, nil
}

func (r *ChecklistRepository) FindChecklistByID(ctx context.Context, id string) (*domain.Checklist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrChecklistNotFound
	}
	var mc mongoChecklist
	if err := r.db.Collection(checklistCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrChecklistNotFound
		}
		return nil, fmt.Errorf("find checklist: %w", err)
	}

	items, err := r.listItems(ctx, mc.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &domain.Checklist{ID: mc.ID.Hex(), Name: mc.Name, Items: items}, nil
}

func (r *ChecklistRepository) ListChecklists(ctx context.Context) ([]*domain.Checklist, error) {
	cursor, err := r.db.Collection(checklistCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer cursor.Close(ctx)

	var lists []*domain.Checklist
	for cursor.Next(ctx) {
		var mc mongoChecklist
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode checklist: %w", err)
		}
		items, err := r.listItems(ctx, mc.ID.Hex())
		if err != nil {
			return nil, err
		}
		lists = append(lists, &domain.Checklist{ID: mc.ID.Hex(), Name: mc.Name, Items: items})
	}
	return lists, cursor.Err()
}

func (r *ChecklistRepository) listItems(ctx context.Context, checklistID string) ([]domain.ChecklistItem, error) {
	cursor, err := r.db.Collection(itemCollection).Find(ctx, bson.M{"checklist_id": checklistID})
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []domain.ChecklistItem{}
	for cursor.Next(ctx) {
		var mi mongoItem
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode checklist item: %w", err)
		}
		items = append(items, domain.ChecklistItem{
			ID:          mi.ID.Hex(),
			ChecklistID: mi.ChecklistID,
			Description: mi.Description,
		})
	}
	return items, cursor.Err()
}

func (r *ChecklistRepository) CreateItem(ctx context.Context, checklistID, description string) (*domain.ChecklistItem, error) {
	res, err := r.db.Collection(itemCollection).InsertOne(ctx, mongoItem{
		ChecklistID: checklistID,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("insert checklist item: %w", err)
	}
	return &domain.ChecklistItem{
		ID:          res.InsertedID.(primitive.ObjectID).Hex(),
		ChecklistID: checklistID,
		Description: description,
	}, nil
}

func (r *ChecklistRepository) FindItemByID(ctx context.Context, id string) (*domain.ChecklistItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrChecklistItemNotFound
	}
	var mi mongoItem
	if err := r.db.Collection(itemCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("find checklist item: %w", err)
	}
	return &domain.ChecklistItem{ID: mi.ID.Hex(), ChecklistID: mi.ChecklistID, Description: mi.Description}, nil
}

func (r *ChecklistRepository) UpsertResponse(ctx context.Context, resp *domain.ChecklistResponse) (*domain.ChecklistResponse, error) {
	filter := bson.M{"service_order_id": resp.OrderID, "checklist_item_id": resp.ItemID}
	update := bson.M{"$set": bson.M{
		"is_checked":   resp.Checked,
		"responded_at": resp.RespondedAt,
	}}

	var mr mongoResponse
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.db.Collection(responseCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr)
	if err != nil {
		return nil, fmt.Errorf("upsert checklist response: %w", err)
	}
	return &domain.ChecklistResponse{
		ID:          mr.ID.Hex(),
		OrderID:     mr.OrderID,
		ItemID:      mr.ItemID,
		Checked:     mr.Checked,
		RespondedAt: mr.RespondedAt.UTC(),
	}, nil
}

func (r *ChecklistRepository) ListResponses(ctx context.Context, orderID string) ([]*domain.ChecklistResponse, error) {
	cursor, err := r.db.Collection(responseCollection).Find(ctx, bson.M{"service_order_id": orderID})
	if err != nil {
		return nil, fmt.Errorf("list checklist responses: %w", err)
	}
	defer cursor.Close(ctx)

	var responses []*domain.ChecklistResponse
	for cursor.Next(ctx) {
		var mr mongoResponse
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode checklist response: %w", err)
		}
		responses = append(responses, &domain.ChecklistResponse{
			ID:          mr.ID.Hex(),
			OrderID:     mr.OrderID,
			ItemID:      mr.ItemID,
			Checked:     mr.Checked,
			RespondedAt: mr.RespondedAt.UTC(),
		})
	}
	return responses, cursor.Err()
}
