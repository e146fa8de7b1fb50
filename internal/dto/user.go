package dto

import (
	"github.com/msibaramdora/visitor-management-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash is never
// serialized.
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	}
}

// ToUserDTOs converts a slice of User models to UserDTOs
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
