package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// ChecklistService manages checklist templates and per-order responses.
type ChecklistService struct {
	checklists ports.ChecklistRepository
	orders     ports.OrderRepository
	log        zerolog.Logger
}

func NewChecklistService(checklists ports.ChecklistRepository, orders ports.OrderRepository, log zerolog.Logger) *ChecklistService {
	return &ChecklistService{checklists: checklists, orders: orders, log: log}
}

func (s *ChecklistService) CreateChecklist(ctx context.Context, name string) (*domain.Checklist, error) {
	return s.checklists.CreateChecklist(ctx, name)
}

func (s *ChecklistService) ListChecklists(ctx context.Context) ([]*domain.Checklist, error) {
	return s.checklists.ListChecklists(ctx)
}

func (s *ChecklistService) AddItem(ctx context.Context, checklistID, description string) (*domain.ChecklistItem, error) {
	if _, err := s.checklists.FindChecklistByID(ctx, checklistID); err != nil {
		return nil, err
	}
	return s.checklists.CreateItem(ctx, checklistID, description)
}

// SaveResponses upserts the given answers for an order. Each item must
// exist; re-submitting an answer replaces the previous one.
func (s *ChecklistService) SaveResponses(ctx context.Context, orderID string, answers []ports.ChecklistAnswer) ([]*domain.ChecklistResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	saved := make([]*domain.ChecklistResponse, 0, len(answers))
	for _, a := range answers {
		if _, err := s.checklists.FindItemByID(ctx, a.ItemID); err != nil {
			return nil, err
		}
		resp, err := s.checklists.UpsertResponse(ctx, &domain.ChecklistResponse{
			OrderID:     orderID,
			ItemID:      a.ItemID,
			Checked:     a.Checked,
			RespondedAt: now,
		})
		if err != nil {
			return nil, err
		}
		saved = append(saved, resp)
	}

	s.log.Info().Str("order_id", orderID).Int("answers", len(saved)).Msg("checklist responses saved")
	return saved, nil
}

func (s *ChecklistService) ListResponses(ctx context.Context, orderID string) ([]*domain.ChecklistResponse, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.checklists.ListResponses(ctx, orderID)
}
