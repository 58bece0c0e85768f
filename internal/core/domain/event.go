package domain

import "time"

// Event names published to the message broker.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderAssigned      = "order.assigned"
	EventUserCreated        = "user.created"
	EventUserDeleted        = "user.deleted"
)

// Event is an outbound domain event. Key identifies the aggregate the
// event belongs to so the broker can preserve per-aggregate ordering.
type Event struct {
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}
