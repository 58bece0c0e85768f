package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// EquipmentRepository defines persistence operations for equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	FindByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
}

// CreateClientInput carries the data for registering a client.
type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CreateEquipmentInput carries the data for registering equipment.
type CreateEquipmentInput struct {
	ClientID     string
	Type         string
	Brand        string
	Model        string
	SerialNumber string
}

// CatalogService manages the client and equipment registries that service
// orders reference.
type CatalogService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	CreateEquipment(ctx context.Context, input CreateEquipmentInput) (*domain.Equipment, error)
	ListEquipment(ctx context.Context) ([]*domain.Equipment, error)
}
