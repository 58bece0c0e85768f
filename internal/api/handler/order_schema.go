package handler

import (
	"time"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

type createOrderRequest struct {
	ClientID    string `json:"client_id"    validate:"required"`
	EquipmentID string `json:"equipment_id" validate:"required"`
	Title       string `json:"title"        validate:"required,max=150"`
	Description string `json:"description"`
}

type updateOrderRequest struct {
	Title       *string `json:"title"                  validate:"omitempty,max=150"`
	Description *string `json:"description"`
	Activities  *string `json:"activities_description"`
	Status      *string `json:"status" validate:"omitempty,oneof=open in_progress completed cancelled"`
}

type assignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" validate:"required"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	EquipmentID string    `json:"equipment_id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Activities  string    `json:"activities_description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type equipmentResponse struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	Type         string    `json:"type"`
	Brand        string    `json:"brand,omitempty"`
	Model        string    `json:"model,omitempty"`
	SerialNumber string    `json:"serial_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type photoResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"service_order_id"`
	URL        string    `json:"photo_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// orderDetailResponse is the expanded single-order view with its related
// records inlined.
type orderDetailResponse struct {
	orderResponse
	Client     *clientResponse    `json:"client,omitempty"`
	Equipment  *equipmentResponse `json:"equipment,omitempty"`
	Technician *userResponse      `json:"technician,omitempty"`
	Photos     []photoResponse    `json:"photos"`
}

type listOrdersResponse struct {
	Items      []orderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type assignTechnicianResponse struct {
	Message string              `json:"message"`
	Order   orderDetailResponse `json:"order"`
}

// --- Domain → response mapping ---

func toOrderResponse(o *domain.ServiceOrder) orderResponse {
	return orderResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		EquipmentID: o.EquipmentID,
		UserID:      o.UserID,
		Title:       o.Title,
		Description: o.Description,
		Activities:  o.Activities,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toClientResponse(c *domain.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func toEquipmentResponse(e *domain.Equipment) equipmentResponse {
	return equipmentResponse{
		ID:           e.ID,
		ClientID:     e.ClientID,
		Type:         e.Type,
		Brand:        e.Brand,
		Model:        e.Model,
		SerialNumber: e.SerialNumber,
		CreatedAt:    e.CreatedAt,
	}
}

func toPhotoResponse(p *domain.Photo) photoResponse {
	return photoResponse{
		ID:         p.ID,
		OrderID:    p.OrderID,
		URL:        p.URL,
		UploadedAt: p.UploadedAt,
	}
}

func toOrderDetailResponse(d *ports.OrderDetail) orderDetailResponse {
	resp := orderDetailResponse{
		orderResponse: toOrderResponse(d.Order),
		Photos:        []photoResponse{},
	}
	if d.Client != nil {
		cr := toClientResponse(d.Client)
		resp.Client = &cr
	}
	if d.Equipment != nil {
		er := toEquipmentResponse(d.Equipment)
		resp.Equipment = &er
	}
	if d.Technician != nil {
		tr := toUserResponse(d.Technician)
		resp.Technician = &tr
	}
	for _, p := range d.Photos {
		resp.Photos = append(resp.Photos, toPhotoResponse(p))
	}
	return resp
}
