package http

import "github.com/shareit-go/shareit-server/internal/user"

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type CreateUserBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}
