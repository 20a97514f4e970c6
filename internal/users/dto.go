package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DisplayName string         `json:"display_name"`
	BirthDate   *string        `json:"birth_date,omitempty"`
	Age         *int           `json:"age,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	Role         enums.UserRole
}

// UpdateProfileInput is the self-service profile patch. Nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	BirthDate *string `json:"birth_date" validate:"omitempty"`
}

// ProfileUpdate is the set of columns UpdateProfile writes.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	BirthDate *time.Time
}

// ListFilters narrows the admin user listing.
type ListFilters struct {
	Query    string
	Role     *enums.UserRole
	IsActive *bool
}

// FromModel maps u to its DTO, computing age relative to now.
func FromModel(u *models.User, now time.Time) *UserDTO {
	if u == nil {
		return nil
	}

	dto := &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: DisplayName(u.FirstName, u.LastName),
		Age:         Age(u.BirthDate, now),
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.BirthDate != nil {
		formatted := u.BirthDate.Format(birthDateLayout)
		dto.BirthDate = &formatted
	}
	return dto
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}
	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		BirthDate:    c.BirthDate,
		Role:         role,
		IsActive:     true,
	}
}
