package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client not found")
var ErrEquipmentNotFound = errors.New("equipment not found")
var ErrEquipmentExists = errors.New("equipment serial number already exists")

// Client is a customer who owns equipment serviced through orders.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Equipment is a physical asset belonging to a client. The serial number
// is unique across all equipment when present.
type Equipment struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand,omitempty"`
	Model        string    `json:"model,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
