package service

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// allowedExtensions is the upload allowlist, lower-case with leading dot.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// PhotoService manages photo attachments on service orders.
type PhotoService struct {
	photos  ports.PhotoRepository
	orders  ports.OrderRepository
	files   ports.FileStore
	maxSize int64
	log     zerolog.Logger
}

func NewPhotoService(photos ports.PhotoRepository, orders ports.OrderRepository, files ports.FileStore, maxSize int64, log zerolog.Logger) *PhotoService {
	return &PhotoService{photos: photos, orders: orders, files: files, maxSize: maxSize, log: log}
}

// Upload stores the file under a generated name and records the photo
// against the order.
func (s *PhotoService) Upload(ctx context.Context, input ports.UploadPhotoInput) (*domain.Photo, error) {
	if _, err := s.orders.FindByID(ctx, input.OrderID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(input.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if s.maxSize > 0 && input.Size > s.maxSize {
		return nil, domain.ErrFileTooLarge
	}

	name := uuid.NewString() + ext
	url, err := s.files.Save(ctx, name, input.Content)
	if err != nil {
		return nil, err
	}

	photo, err := s.photos.Create(ctx, &domain.Photo{
		OrderID:    input.OrderID,
		URL:        url,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		// The record is the source of truth; drop the orphaned file.
		if rmErr := s.files.Remove(ctx, name); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("file", name).Msg("failed to remove orphaned upload")
		}
		return nil, err
	}

	s.log.Info().Str("order_id", input.OrderID).Str("photo_id", photo.ID).Msg("photo uploaded")
	return photo, nil
}

func (s *PhotoService) ListByOrder(ctx context.Context, orderID string) ([]*domain.Photo, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.photos.ListByOrder(ctx, orderID)
}

// Delete removes the record first, then the file best-effort.
func (s *PhotoService) Delete(ctx context.Context, id string) error {
	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.photos.Delete(ctx, id); err != nil {
		return err
	}

	if name := filepath.Base(photo.URL); name != "" {
		if err := s.files.Remove(ctx, name); err != nil {
			s.log.Warn().Err(err).Str("photo_id", id).Msg("failed to remove photo file")
		}
	}
	return nil
}
