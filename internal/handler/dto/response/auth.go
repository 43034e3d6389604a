package response

import (
	"spotstay/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	User        *UserResponse `json:"user"`
}

func FromUserView(rm *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:    rm.ID,
		Email: rm.Email,
		Name:  rm.Name,
		Role:  rm.Role,
	}
}
