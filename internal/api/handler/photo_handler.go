package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osworks/service-orders/internal/api/metrics"
	"github.com/osworks/service-orders/internal/core/ports"
)

// PhotoHandler exposes photo attachments on service orders.
type PhotoHandler struct {
	photos ports.PhotoService
}

func NewPhotoHandler(photos ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload attaches a photo (multipart field "file") to a service order.
//
// @Summary      Upload a photo for an order
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Service order ID"
// @Param        file  formData  file    true  "Photo file"
// @Success      201   {object}  photoResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Router       /orders/{id}/photos [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	photo, err := h.photos.Upload(c.Request().Context(), ports.UploadPhotoInput{
		OrderID:  c.Param("id"),
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  src,
	})
	if err != nil {
		return err
	}

	metrics.PhotosUploadedTotal.Inc()
	return c.JSON(http.StatusCreated, toPhotoResponse(photo))
}

// ListByOrder returns the photos attached to a service order.
//
// @Summary      List photos for an order
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Service order ID"
// @Success      200  {array}   photoResponse
// @Failure      401  {object}  errorResponse
// @Router       /orders/{id}/photos [get]
func (h *PhotoHandler) ListByOrder(c echo.Context) error {
	photos, err := h.photos.ListByOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a photo record and its stored file.
//
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Photo ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	if err := h.photos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "photo deleted"})
}
