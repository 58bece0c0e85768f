package ports

import (
	"context"
	"io"

	"github.com/osworks/service-orders/internal/core/domain"
)

// PhotoRepository defines persistence operations for photo records.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
	FindByID(ctx context.Context, id string) (*domain.Photo, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Photo, error)
	Delete(ctx context.Context, id string) error
}

// FileStore abstracts where uploaded files physically live.
type FileStore interface {
	// Save writes the content under name and returns the serving URL.
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	// Remove deletes the stored file. Removing a missing file is not an
	// error.
	Remove(ctx context.Context, name string) error
}

// UploadPhotoInput carries an incoming photo upload.
type UploadPhotoInput struct {
	OrderID  string
	Filename string
	Size     int64
	Content  io.Reader
}

// PhotoService manages photo attachments on service orders.
type PhotoService interface {
	Upload(ctx context.Context, input UploadPhotoInput) (*domain.Photo, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Photo, error)
	Delete(ctx context.Context, id string) error
}
