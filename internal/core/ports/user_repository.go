package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// UpdateUserFields carries the optional fields of a partial user update.
// Nil pointers mean "leave unchanged".
type UpdateUserFields struct {
	Username     *string
	Name         *string
	Email        *string
	Role         *string
	PasswordHash *string
	Active       *bool
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// ListActive returns active users only, used for technician assignment.
	ListActive(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
