package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OrderService implements the service-order use cases.
type OrderService struct {
	orders    ports.OrderRepository
	clients   ports.ClientRepository
	equipment ports.EquipmentRepository
	users     ports.UserRepository
	photos    ports.PhotoRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	clients ports.ClientRepository,
	equipment ports.EquipmentRepository,
	users ports.UserRepository,
	photos ports.PhotoRepository,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		clients:   clients,
		equipment: equipment,
		users:     users,
		photos:    photos,
		publisher: publisher,
		log:       log,
	}
}

// Create opens a new order. The referenced client and equipment must
// exist; the order starts open and assigned to the acting user.
func (s *OrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.ServiceOrder, error) {
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.equipment.FindByID(ctx, input.EquipmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.ServiceOrder{
		ClientID:    input.ClientID,
		EquipmentID: input.EquipmentID,
		UserID:      input.ActorID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.log.Error().Err(err).Str("client_id", input.ClientID).Msg("failed to create order")
		return nil, err
	}

	s.emit(ctx, domain.EventOrderCreated, created.ID, map[string]string{
		"title":     created.Title,
		"client_id": created.ClientID,
	})
	s.log.Info().Str("order_id", created.ID).Str("client_id", created.ClientID).Msg("order created")
	return created, nil
}

// Get returns the order expanded with its client, equipment, assigned
// technician, and photos. Missing related records are tolerated (the
// order may reference a since-deleted technician).
func (s *OrderService) Get(ctx context.Context, id string) (*ports.OrderDetail, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.OrderDetail{Order: order}
	if client, err := s.clients.FindByID(ctx, order.ClientID); err == nil {
		detail.Client = client
	}
	if eq, err := s.equipment.FindByID(ctx, order.EquipmentID); err == nil {
		detail.Equipment = eq
	}
	if tech, err := s.users.FindByID(ctx, order.UserID); err == nil {
		detail.Technician = tech
	}
	if photos, err := s.photos.ListByOrder(ctx, order.ID); err == nil {
		detail.Photos = photos
	}
	return detail, nil
}

func (s *OrderService) List(ctx context.Context, filter ports.ListOrdersFilter) (*ports.ListOrdersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies a partial update. Status changes must follow the
// transition table.
func (s *OrderService) Update(ctx context.Context, id string, input ports.UpdateOrderInput) (*domain.ServiceOrder, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := ports.UpdateOrderFields{
		Title:       input.Title,
		Description: input.Description,
		Activities:  input.Activities,
	}

	var statusChanged bool
	if input.Status != nil {
		next := domain.OrderStatus(*input.Status)
		if !order.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidTransition
		}
		statusChanged = next != order.Status
		fields.Status = &next
	}

	updated, err := s.orders.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if statusChanged {
		s.emit(ctx, domain.EventOrderStatusChanged, updated.ID, map[string]string{
			"status": string(updated.Status),
		})
	}
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.orders.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// AssignTechnician reassigns the order to an existing, active user.
func (s *OrderService) AssignTechnician(ctx context.Context, orderID, technicianID string) (*ports.OrderDetail, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	tech, err := s.users.FindByID(ctx, technicianID)
	if err != nil {
		return nil, err
	}
	if !tech.Active {
		return nil, domain.ErrUserNotFound
	}

	if _, err := s.orders.Update(ctx, orderID, ports.UpdateOrderFields{UserID: &technicianID}); err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventOrderAssigned, orderID, map[string]string{
		"technician_id": technicianID,
		"username":      tech.Username,
	})
	s.log.Info().Str("order_id", orderID).Str("technician", tech.Username).Msg("technician assigned")

	return s.Get(ctx, orderID)
}

func (s *OrderService) ListTechnicians(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListActive(ctx)
}

func (s *OrderService) emit(ctx context.Context, name, key string, payload any) {
	if s.publisher == nil {
		return
	}
	event := domain.Event{Name: name, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
