package domain

import (
	"errors"
	"time"
)

var ErrChecklistNotFound = errors.New("checklist not found")
var ErrChecklistItemNotFound = errors.New("checklist item not found")

// Checklist is a reusable template of inspection items.
type Checklist struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistItem is a single inspection point within a checklist.
type ChecklistItem struct {
	ID          string `json:"id"`
	ChecklistID string `json:"checklist_id"`
	Description string `json:"description"`
}

// ChecklistResponse records how a single item was answered on a given
// service order. There is at most one response per (order, item) pair;
// re-submitting replaces the previous answer.
type ChecklistResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"service_order_id"`
	ItemID      string    `json:"checklist_item_id"`
	Checked     bool      `json:"is_checked"`
	RespondedAt time.Time `json:"responded_at"`
}
