package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of a service order.
type OrderStatus string

const (
	StatusOpen       OrderStatus = "open"
	StatusInProgress OrderStatus = "in_progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

var ErrOrderNotFound = errors.New("service order not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from the current status to
// next is valid. A no-op transition (same status) is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceOrder is the core aggregate of the system: a unit of field work
// performed on a client's equipment by an assigned technician.
type ServiceOrder struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"client_id"`
	EquipmentID string      `json:"equipment_id"`
	UserID      string      `json:"user_id"` // assigned technician
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Activities  string      `json:"activities_description,omitempty"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
