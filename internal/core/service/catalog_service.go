package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// CatalogService manages the client and equipment registries.
type CatalogService struct {
	clients   ports.ClientRepository
	equipment ports.EquipmentRepository
	log       zerolog.Logger
}

func NewCatalogService(clients ports.ClientRepository, equipment ports.EquipmentRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{clients: clients, equipment: equipment, log: log}
}

func (s *CatalogService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", created.ID).Str("name", created.Name).Msg("client created")
	return created, nil
}

func (s *CatalogService) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.clients.List(ctx)
}

// CreateEquipment registers equipment under an existing client.
func (s *CatalogService) CreateEquipment(ctx context.Context, input ports.CreateEquipmentInput) (*domain.Equipment, error) {
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	eq := &domain.Equipment{
		ClientID:     input.ClientID,
		Type:         input.Type,
		Brand:        input.Brand,
		Model:        input.Model,
		SerialNumber: input.SerialNumber,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.equipment.Create(ctx, eq)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("equipment_id", created.ID).Str("client_id", created.ClientID).Msg("equipment created")
	return created, nil
}

func (s *CatalogService) ListEquipment(ctx context.Context) ([]*domain.Equipment, error) {
	return s.equipment.List(ctx)
}
