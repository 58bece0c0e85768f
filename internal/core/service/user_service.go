package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
	"github.com/osworks/service-orders/internal/pkg/hasher"
)

const minUsernameLen = 3

// UserService implements administrative account management.
type UserService struct {
	repo      ports.UserRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, publisher ports.EventPublisher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, publisher: publisher, log: log}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if len(input.Username) < minUsernameLen || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleTechnician
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventUserCreated, created.ID, map[string]string{
		"username": created.Username,
		"role":     created.Role,
	})
	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user created")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Username != nil && len(*input.Username) < minUsernameLen {
		return nil, domain.ErrInvalidCredentials
	}

	fields := ports.UpdateUserFields{
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Role:     input.Role,
		Active:   input.Active,
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		fields.PasswordHash = &hash
	}

	return s.repo.Update(ctx, id, fields)
}

// Delete permanently removes an account. An administrator cannot delete
// their own account.
func (s *UserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, domain.EventUserDeleted, id, map[string]string{"username": user.Username})
	s.log.Info().Str("username", user.Username).Msg("user deleted")
	return nil
}

func (s *UserService) emit(ctx context.Context, name, key string, payload any) {
	if s.publisher == nil {
		return
	}
	event := domain.Event{Name: name, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", name).Msg("failed to publish event")
	}
}
