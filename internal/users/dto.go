package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/felipeortega/gymdesk-backend/pkg/db/models"
	"github.com/felipeortega/gymdesk-backend/pkg/enums"
)

// UserDTO exposes safe staff account data in API responses.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CreateUserDTO holds creation-time data for a new staff account.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         enums.UserRole
}

// FromModel maps the persisted user into a DTO. The password hash never
// leaves this package.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	dto := &UserDTO{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
	if m.LastLoginAt != nil {
		cpy := *m.LastLoginAt
		dto.LastLoginAt = &cpy
	}
	return dto
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         c.Role,
	}
}
