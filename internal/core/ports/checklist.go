package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// ChecklistRepository defines persistence operations for checklist
// templates, their items, and per-order responses.
type ChecklistRepository interface {
	CreateChecklist(ctx context.Context, name string) (*domain.Checklist, error)
	FindChecklistByID(ctx context.Context, id string) (*domain.Checklist, error)
	ListChecklists(ctx context.Context) ([]*domain.Checklist, error)
	CreateItem(ctx context.Context, checklistID, description string) (*domain.ChecklistItem, error)
	FindItemByID(ctx context.Context, id string) (*domain.ChecklistItem, error)
	// UpsertResponse replaces any previous response for the same
	// (order, item) pair.
	UpsertResponse(ctx context.Context, resp *domain.ChecklistResponse) (*domain.ChecklistResponse, error)
	ListResponses(ctx context.Context, orderID string) ([]*domain.ChecklistResponse, error)
}

// ChecklistAnswer is a single answer submitted for an order.
type ChecklistAnswer struct {
	ItemID  string
	Checked bool
}

// ChecklistService manages checklist templates and order responses.
type ChecklistService interface {
	CreateChecklist(ctx context.Context, name string) (*domain.Checklist, error)
	ListChecklists(ctx context.Context) ([]*domain.Checklist, error)
	AddItem(ctx context.Context, checklistID, description string) (*domain.ChecklistItem, error)
	// SaveResponses upserts the given answers for an order. Re-submitting
	// an answer for the same item replaces the previous one.
	SaveResponses(ctx context.Context, orderID string, answers []ChecklistAnswer) ([]*domain.ChecklistResponse, error)
	ListResponses(ctx context.Context, orderID string) ([]*domain.ChecklistResponse, error)
}
