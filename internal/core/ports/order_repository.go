package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
type ListOrdersFilter struct {
	Status string // optional: filter by order status
	Page   int    // 1-based
	Limit  int    // max rows per page (capped by the service)
}

// UpdateOrderFields carries the optional fields of a partial order update.
type UpdateOrderFields struct {
	Title       *string
	Description *string
	Activities  *string
	Status      *domain.OrderStatus
	UserID      *string // technician reassignment
}

// OrderRepository defines persistence operations for service orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.ServiceOrder) (*domain.ServiceOrder, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceOrder, error)
	// List returns a page of orders matching filter and the total count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.ServiceOrder, int64, error)
	Update(ctx context.Context, id string, fields UpdateOrderFields) (*domain.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
}
