package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
	"github.com/beggy/beggy-backend/pkg/units"
)

// ItemDTO is the API shape of an item. WeightKg and VolumeL are the converted base-unit values.
type ItemDTO struct {
	ID          uuid.UUID          `json:"id"`
	ContainerID *uuid.UUID         `json:"container_id,omitempty"`
	Name        string             `json:"name"`
	Category    enums.ItemCategory `json:"category"`
	Weight      float64            `json:"weight"`
	WeightUnit  enums.WeightUnit   `json:"weight_unit"`
	WeightKg    float64            `json:"weight_kg"`
	Volume      float64            `json:"volume"`
	VolumeUnit  enums.VolumeUnit   `json:"volume_unit"`
	VolumeL     float64            `json:"volume_l"`
	Color       *string            `json:"color,omitempty"`
	IsFragile   bool               `json:"is_fragile"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateItemInput is the payload for a new item.
type CreateItemInput struct {
	Name       string             `json:"name" validate:"required,max=120"`
	Category   enums.ItemCategory `json:"category" validate:"required,item_category"`
	Weight     *float64           `json:"weight" validate:"required,gte=0,lte=1000000"`
	WeightUnit enums.WeightUnit   `json:"weight_unit" validate:"required,weight_unit"`
	Volume     *float64           `json:"volume" validate:"required,gte=0,lte=1000000"`
	VolumeUnit enums.VolumeUnit   `json:"volume_unit" validate:"required,volume_unit"`
	Color      *string            `json:"color" validate:"omitempty,max=40"`
	IsFragile  bool               `json:"is_fragile"`
}

// UpdateItemInput is a partial item update. Nil fields are left untouched.
type UpdateItemInput struct {
	Name       *string             `json:"name" validate:"omitempty,min=1,max=120"`
	Category   *enums.ItemCategory `json:"category" validate:"omitempty,item_category"`
	Weight     *float64            `json:"weight" validate:"omitempty,gte=0,lte=1000000"`
	WeightUnit *enums.WeightUnit   `json:"weight_unit" validate:"omitempty,weight_unit"`
	Volume     *float64            `json:"volume" validate:"omitempty,gte=0,lte=1000000"`
	VolumeUnit *enums.VolumeUnit   `json:"volume_unit" validate:"omitempty,volume_unit"`
	Color      *string             `json:"color" validate:"omitempty,max=40"`
	IsFragile  *bool               `json:"is_fragile"`
}

// ListFilters narrows an item listing.
type ListFilters struct {
	Category    *enums.ItemCategory
	Unassigned  bool
	ContainerID *uuid.UUID
}

// FromModel maps an item row to its DTO.
func FromModel(m models.Item) (ItemDTO, error) {
	kg, err := units.ConvertToKilogram(m.Weight, m.WeightUnit)
	if err != nil {
		return ItemDTO{}, err
	}
	liters, err := units.ConvertToLiter(m.Volume, m.VolumeUnit)
	if err != nil {
		return ItemDTO{}, err
	}
	return ItemDTO{
		ID:          m.ID,
		ContainerID: m.ContainerID,
		Name:        m.Name,
		Category:    m.Category,
		Weight:      m.Weight,
		WeightUnit:  m.WeightUnit,
		WeightKg:    kg,
		Volume:      m.Volume,
		VolumeUnit:  m.VolumeUnit,
		VolumeL:     liters,
		Color:       m.Color,
		IsFragile:   m.IsFragile,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// Measure extracts the capacity inputs of an item.
func Measure(m models.Item) capacity.ItemMeasure {
	return capacity.ItemMeasure{
		Weight:     m.Weight,
		WeightUnit: m.WeightUnit,
		Volume:     m.Volume,
		VolumeUnit: m.VolumeUnit,
	}
}

// Measures maps Measure over rows.
func Measures(rows []models.Item) []capacity.ItemMeasure {
	out := make([]capacity.ItemMeasure, 0, len(rows))
	for _, row := range rows {
		out = append(out, Measure(row))
	}
	return out
}
