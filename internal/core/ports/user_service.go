package ports

import (
	"context"

	"github.com/osworks/service-orders/internal/core/domain"
)

// CreateUserInput carries the data needed to create a new account.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// UpdateUserInput carries the optional fields of a partial update. A nil
// pointer leaves the field unchanged.
type UpdateUserInput struct {
	Username *string
	Name     *string
	Email    *string
	Role     *string
	Password *string
	Active   *bool
}

// UserService implements administrative account management.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the account permanently. actorID guards against an
	// administrator deleting their own account.
	Delete(ctx context.Context, id, actorID string) error
}
