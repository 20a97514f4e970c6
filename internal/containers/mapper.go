package containers

import (
	"github.com/beggy/beggy-backend/internal/capacity"
	"github.com/beggy/beggy-backend/internal/items"
	"github.com/beggy/beggy-backend/pkg/db/models"
)

// toDTO evaluates c against rows and returns the DTO together with the measurements used.
func toDTO(c models.Container, rows []models.Item) (ContainerDTO, capacity.Measurements, error) {
	m, err := capacity.Measure(c.MaxWeight, c.MaxCapacity, items.Measures(rows))
	if err != nil {
		return ContainerDTO{}, capacity.Measurements{}, err
	}

	mapped := make([]items.ItemDTO, 0, len(rows))
	for _, row := range rows {
		dto, err := items.FromModel(row)
		if err != nil {
			return ContainerDTO{}, capacity.Measurements{}, err
		}
		mapped = append(mapped, dto)
	}

	return ContainerDTO{
		ID:              c.ID,
		Kind:            c.Kind,
		Name:            c.Name,
		Description:     c.Description,
		Color:           c.Color,
		Brand:           c.Brand,
		Style:           c.Style,
		MaxWeight:       c.MaxWeight,
		MaxCapacity:     c.MaxCapacity,
		IsDefault:       c.IsDefault,
		Items:           mapped,
		CurrentWeight:   m.CurrentWeight,
		CurrentCapacity: m.CurrentCapacity,
		ItemCount:       m.ItemCount,
		Summary:         capacity.Evaluate(m),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}, m, nil
}
