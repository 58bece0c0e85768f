package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
