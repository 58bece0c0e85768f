package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/api/metrics"
	"github.com/osworks/service-orders/internal/core/ports"
)

// OrderHandler handles HTTP requests for service orders.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns a page of orders, optionally filtered by status.
//
// @Summary      List service orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listOrdersResponse
// @Failure      401     {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.orders.List(c.Request().Context(), ports.ListOrdersFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]orderResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, toOrderResponse(o))
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns one order expanded with its related records.
//
// @Summary      Get a service order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	detail, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderDetailResponse(detail))
}

// Create opens a new order assigned to the acting user.
//
// @Summary      Create a service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Create(c.Request().Context(), ports.CreateOrderInput{
		ClientID:    req.ClientID,
		EquipmentID: req.EquipmentID,
		Title:       req.Title,
		Description: req.Description,
		ActorID:     actor.ID,
	})
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Update applies a partial update; status changes follow the transition
// table.
//
// @Summary      Update a service order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Order ID"
// @Param        body  body      updateOrderRequest  true  "Fields to update"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Update(c.Request().Context(), c.Param("id"), ports.UpdateOrderInput{
		Title:       req.Title,
		Description: req.Description,
		Activities:  req.Activities,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	if req.Status != nil {
		metrics.OrderStatusChangesTotal.WithLabelValues(*req.Status).Inc()
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete removes an order. Admin only.
//
// @Summary      Delete a service order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orders.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "order deleted"})
}

// AssignTechnician reassigns the order to an active user.
//
// @Summary      Assign a technician
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Order ID"
// @Param        body  body      assignTechnicianRequest  true  "Technician"
// @Success      200   {object}  assignTechnicianResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders/{id}/assign [put]
func (h *OrderHandler) AssignTechnician(c echo.Context) error {
	var req assignTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	detail, err := h.orders.AssignTechnician(c.Request().Context(), c.Param("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignTechnicianResponse{
		Message: "technician assigned",
		Order:   toOrderDetailResponse(detail),
	})
}

// ListTechnicians returns the active users available for assignment.
//
// @Summary      List technicians
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Router       /technicians [get]
func (h *OrderHandler) ListTechnicians(c echo.Context) error {
	technicians, err := h.orders.ListTechnicians(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(technicians))
}
