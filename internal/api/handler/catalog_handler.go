package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/core/ports"
)

type createClientRequest struct {
	Name    string `json:"name"    validate:"required,max=150"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"   validate:"max=20"`
	Address string `json:"address"`
}

type createEquipmentRequest struct {
	ClientID     string `json:"client_id"     validate:"required"`
	Type         string `json:"type"          validate:"required,max=50"`
	Brand        string `json:"brand"         validate:"max=50"`
	Model        string `json:"model"         validate:"max=100"`
	SerialNumber string `json:"serial_number" validate:"max=100"`
}

// CatalogHandler exposes the client and equipment registries.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListClients returns all registered clients.
//
// @Summary      List clients
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientResponse
// @Failure      401  {object}  errorResponse
// @Router       /clients [get]
func (h *CatalogHandler) ListClients(c echo.Context) error {
	clients, err := h.catalog.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]clientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, toClientResponse(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateClient registers a new client.
//
// @Summary      Create a client
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Router       /clients [post]
func (h *CatalogHandler) CreateClient(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.catalog.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// ListEquipment returns all registered equipment.
//
// @Summary      List equipment
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   equipmentResponse
// @Failure      401  {object}  errorResponse
// @Router       /equipments [get]
func (h *CatalogHandler) ListEquipment(c echo.Context) error {
	items, err := h.catalog.ListEquipment(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]equipmentResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEquipmentResponse(e))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateEquipment registers equipment under an existing client.
//
// @Summary      Create equipment
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEquipmentRequest  true  "Equipment details"
// @Success      201   {object}  equipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /equipments [post]
func (h *CatalogHandler) CreateEquipment(c echo.Context) error {
	var req createEquipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	eq, err := h.catalog.CreateEquipment(c.Request().Context(), ports.CreateEquipmentInput{
		ClientID:     req.ClientID,
		Type:         req.Type,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEquipmentResponse(eq))
}
