package domain

import (
	"errors"
	"time"
)

var ErrPhotoNotFound = errors.New("photo not found")
var ErrUnsupportedFileType = errors.New("unsupported file type")
var ErrFileTooLarge = errors.New("file too large")

// Photo is an image attached to a service order. The file itself lives in
// the file store; this record only keeps the serving URL.
type Photo struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"service_order_id"`
	URL        string    `json:"photo_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
