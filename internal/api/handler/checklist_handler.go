package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

type createChecklistRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

type addChecklistItemRequest struct {
	Description string `json:"description" validate:"required,max=300"`
}

type checklistAnswerRequest struct {
	ItemID  string `json:"checklist_item_id" validate:"required"`
	Checked bool   `json:"is_checked"`
}

type saveResponsesRequest struct {
	Answers []checklistAnswerRequest `json:"answers" validate:"required,min=1,dive"`
}

type checklistItemResponse struct {
	ID          string `json:"id"`
	ChecklistID string `json:"checklist_id"`
	Description string `json:"description"`
}

type checklistResponse struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Items []checklistItemResponse `json:"items"`
}

type checklistAnswerResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"service_order_id"`
	ItemID      string `json:"checklist_item_id"`
	Checked     bool   `json:"is_checked"`
	RespondedAt string `json:"responded_at"`
}

func toChecklistResponse(cl *domain.Checklist) checklistResponse {
	items := make([]checklistItemResponse, 0, len(cl.Items))
	for _, it := range cl.Items {
		items = append(items, checklistItemResponse{
			ID:          it.ID,
			ChecklistID: it.ChecklistID,
			Description: it.Description,
		})
	}
	return checklistResponse{ID: cl.ID, Name: cl.Name, Items: items}
}

func toChecklistAnswerResponses(in []*domain.ChecklistResponse) []checklistAnswerResponse {
	out := make([]checklistAnswerResponse, 0, len(in))
	for _, r := range in {
		out = append(out, checklistAnswerResponse{
			ID:          r.ID,
			OrderID:     r.OrderID,
			ItemID:      r.ItemID,
			Checked:     r.Checked,
			RespondedAt: r.RespondedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

// ChecklistHandler exposes checklist templates and per-order responses.
type ChecklistHandler struct {
	checklists ports.ChecklistService
}

func NewChecklistHandler(checklists ports.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

// List returns every checklist template with its items.
//
// @Summary      List checklists
// @Tags         checklists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   checklistResponse
// @Failure      401  {object}  errorResponse
// @Router       /checklists [get]
func (h *ChecklistHandler) List(c echo.Context) error {
	checklists, err := h.checklists.ListChecklists(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]checklistResponse, 0, len(checklists))
	for _, cl := range checklists {
		out = append(out, toChecklistResponse(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// Create registers a new checklist template.
//
// @Summary      Create a checklist
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createChecklistRequest  true  "Checklist details"
// @Success      201   {object}  checklistResponse
// @Failure      400   {object}  errorResponse
// @Router       /checklists [post]
func (h *ChecklistHandler) Create(c echo.Context) error {
	var req createChecklistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cl, err := h.checklists.CreateChecklist(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toChecklistResponse(cl))
}

// AddItem appends an inspection item to an existing checklist.
//
// @Summary      Add a checklist item
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Checklist ID"
// @Param        body  body      addChecklistItemRequest  true  "Item details"
// @Success      201   {object}  checklistItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /checklists/{id}/items [post]
func (h *ChecklistHandler) AddItem(c echo.Context) error {
	var req addChecklistItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.checklists.AddItem(c.Request().Context(), c.Param("id"), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, checklistItemResponse{
		ID:          item.ID,
		ChecklistID: item.ChecklistID,
		Description: item.Description,
	})
}

// SaveResponses upserts checklist answers for a service order.
//
// @Summary      Save checklist responses for an order
// @Tags         checklists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Service order ID"
// @Param        body  body      saveResponsesRequest  true  "Answers"
// @Success      200   {array}   checklistAnswerResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /orders/{id}/responses [put]
func (h *ChecklistHandler) SaveResponses(c echo.Context) error {
	var req saveResponsesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answers := make([]ports.ChecklistAnswer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, ports.ChecklistAnswer{ItemID: a.ItemID, Checked: a.Checked})
	}

	saved, err := h.checklists.SaveResponses(c.Request().Context(), c.Param("id"), answers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChecklistAnswerResponses(saved))
}

// ListResponses returns the recorded checklist answers for a service order.
//
// @Summary      List checklist responses for an order
// @Tags         checklists
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Service order ID"
// @Success      200  {array}   checklistAnswerResponse
// @Failure      401  {object}  errorResponse
// @Router       /orders/{id}/responses [get]
func (h *ChecklistHandler) ListResponses(c echo.Context) error {
	responses, err := h.checklists.ListResponses(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toChecklistAnswerResponses(responses))
}
