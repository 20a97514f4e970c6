package containers

import (
	"time"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/internal/items"
	"github.com/beggy/beggy-backend/pkg/enums"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

// ContainerDTO is a bag or suitcase with its items and derived load fields.
type ContainerDTO struct {
	ID              uuid.UUID             `json:"id"`
	Kind            enums.ContainerKind   `json:"kind"`
	Name            string                `json:"name"`
	Description     *string               `json:"description,omitempty"`
	Color           *string               `json:"color,omitempty"`
	Brand           *string               `json:"brand,omitempty"`
	Style           *enums.ContainerStyle `json:"style,omitempty"`
	MaxWeight       float64               `json:"max_weight"`
	MaxCapacity     float64               `json:"max_capacity"`
	IsDefault       bool                  `json:"is_default"`
	Items           []items.ItemDTO       `json:"items"`
	CurrentWeight   float64               `json:"current_weight"`
	CurrentCapacity float64               `json:"current_capacity"`
	ItemCount       int                   `json:"item_count"`
	capacity.Summary
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateContainerInput is the payload for a new bag or suitcase. Limits are kilograms and liters.
type CreateContainerInput struct {
	Name        string                `json:"name" validate:"required,max=120"`
	Description *string               `json:"description" validate:"omitempty,max=500"`
	Color       *string               `json:"color" validate:"omitempty,max=40"`
	Brand       *string               `json:"brand" validate:"omitempty,max=80"`
	Style       *enums.ContainerStyle `json:"style" validate:"omitempty,container_style"`
	MaxWeight   float64               `json:"max_weight" validate:"required,gt=0,lte=1000000"`
	MaxCapacity float64               `json:"max_capacity" validate:"required,gt=0,lte=1000000"`
	IsDefault   bool                  `json:"is_default"`
}

// UpdateContainerInput is a partial update. Nil fields are left untouched.
type UpdateContainerInput struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string               `json:"description" validate:"omitempty,max=500"`
	Color       *string               `json:"color" validate:"omitempty,max=40"`
	Brand       *string               `json:"brand" validate:"omitempty,max=80"`
	Style       *enums.ContainerStyle `json:"style" validate:"omitempty,container_style"`
	MaxWeight   *float64              `json:"max_weight" validate:"omitempty,gt=0,lte=1000000"`
	MaxCapacity *float64              `json:"max_capacity" validate:"omitempty,gt=0,lte=1000000"`
	IsDefault   *bool                 `json:"is_default"`
}

// ListParams combines cursor paging with the optional status filter.
type ListParams struct {
	pagination.Params
	Status *enums.ContainerStatus
}

// AssignmentResult is returned by item assignment changes. Violations is empty when the
// container is within its limits.
type AssignmentResult struct {
	Container  ContainerDTO               `json:"container"`
	Violations []capacity.ViolationDetail `json:"violations,omitempty"`
}
