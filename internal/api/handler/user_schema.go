package handler

import (
	"time"

	"github.com/osworks/service-orders/internal/core/domain"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"max=100"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Role     string `json:"role"     validate:"omitempty,oneof=tecnico administrador"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Name     *string `json:"name"     validate:"omitempty,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Role     *string `json:"role"     validate:"omitempty,oneof=tecnico administrador"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Active   *bool   `json:"is_active"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
