package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// CreateOrderInput carries the data needed to open a new service order.
type CreateOrderInput struct {
	ClientID    string
	EquipmentID string
	Title       string
	Description string
	// ActorID is the authenticated user opening the order; the order is
	// initially assigned to them.
	ActorID string
}

// UpdateOrderInput carries the optional fields of a partial order update.
type UpdateOrderInput struct {
	Title       *string
	Description *string
	Activities  *string
	Status      *string
}

// OrderDetail is the expanded view of a single order including its
// related records.
type OrderDetail struct {
	Order      *domain.ServiceOrder
	Client     *domain.Client
	Equipment  *domain.Equipment
	Technician *domain.User
	Photos     []*domain.Photo
}

// ListOrdersResult is a page of orders plus paging metadata.
type ListOrdersResult struct {
	Items      []*domain.ServiceOrder
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines use-case operations for service orders.
type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.ServiceOrder, error)
	Get(ctx context.Context, id string) (*OrderDetail, error)
	List(ctx context.Context, filter ListOrdersFilter) (*ListOrdersResult, error)
	Update(ctx context.Context, id string, input UpdateOrderInput) (*domain.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
	// AssignTechnician reassigns the order to an existing, active user.
	AssignTechnician(ctx context.Context, orderID, technicianID string) (*OrderDetail, error)
	// ListTechnicians returns the active users available for assignment.
	ListTechnicians(ctx context.Context) ([]*domain.User, error)
}
