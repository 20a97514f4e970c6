package items

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/db/models"
	pkgerrors "github.com/beggy/beggy-backend/pkg/errors"
	"github.com/beggy/beggy-backend/pkg/pagination"
	"github.com/beggy/beggy-backend/pkg/units"
)

type itemsRepository interface {
	Create(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error)
	List(ctx context.Context, ownerID uuid.UUID, filters ListFilters, params pagination.Params) (pagination.Page[models.Item], error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ServiceParams groups dependencies for the items service.
type ServiceParams struct {
	Repo itemsRepository
}

// Service exposes owner-scoped item management.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (ItemDTO, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (ItemDTO, error)
	List(ctx context.Context, ownerID uuid.UUID, filters ListFilters, params pagination.Params) (pagination.Page[ItemDTO], error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateItemInput) (ItemDTO, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo itemsRepository
}

// NewService builds an items service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "items repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (ItemDTO, error) {
	if ownerID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "owner is required")
	}
	if input.Weight == nil || input.Volume == nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "weight and volume are required")
	}
	item := &models.Item{
		UserID:     ownerID,
		Name:       strings.TrimSpace(input.Name),
		Category:   input.Category,
		Weight:     *input.Weight,
		WeightUnit: input.WeightUnit,
		Volume:     *input.Volume,
		VolumeUnit: input.VolumeUnit,
		Color:      input.Color,
		IsFragile:  input.IsFragile,
	}
	if err := validate(item); err != nil {
		return ItemDTO{}, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return toDTO(*item)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (ItemDTO, error) {
	item, err := s.load(ctx, ownerID, id)
	if err != nil {
		return ItemDTO{}, err
	}
	return toDTO(*item)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, filters ListFilters, params pagination.Params) (pagination.Page[ItemDTO], error) {
	if filters.Category != nil && !filters.Category.IsValid() {
		return pagination.Page[ItemDTO]{}, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", *filters.Category)
	}
	page, err := s.repo.List(ctx, ownerID, filters, params)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return pagination.Page[ItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		return pagination.Page[ItemDTO]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	out := pagination.Page[ItemDTO]{Items: make([]ItemDTO, 0, len(page.Items)), NextCursor: page.NextCursor}
	for _, row := range page.Items {
		dto, err := toDTO(row)
		if err != nil {
			return pagination.Page[ItemDTO]{}, err
		}
		out.Items = append(out.Items, dto)
	}
	return out, nil
}

// Update applies a partial update. The merged item is re-validated before it is written.
func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateItemInput) (ItemDTO, error) {
	item, err := s.load(ctx, ownerID, id)
	if err != nil {
		return ItemDTO{}, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Weight != nil {
		item.Weight = *input.Weight
	}
	if input.WeightUnit != nil {
		item.WeightUnit = *input.WeightUnit
	}
	if input.Volume != nil {
		item.Volume = *input.Volume
	}
	if input.VolumeUnit != nil {
		item.VolumeUnit = *input.VolumeUnit
	}
	if input.Color != nil {
		item.Color = input.Color
	}
	if input.IsFragile != nil {
		item.IsFragile = *input.IsFragile
	}
	if err := validate(item); err != nil {
		return ItemDTO{}, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return ItemDTO{}, mapRepoError(err, "update item")
	}
	return toDTO(*item)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return mapRepoError(err, "delete item")
	}
	return nil
}

func (s *service) load(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapRepoError(err, "load item")
	}
	return item, nil
}

func validate(item *models.Item) error {
	if item.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !item.Category.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid category %q", item.Category).
			WithDetails(map[string]any{"category": string(item.Category)})
	}
	if item.Weight < 0 || item.Volume < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "weight and volume must be zero or greater")
	}
	if _, err := units.ConvertToKilogram(item.Weight, item.WeightUnit); err != nil {
		return pkgerrors.Normalize(err, pkgerrors.CodeValidation, "invalid weight unit")
	}
	if _, err := units.ConvertToLiter(item.Volume, item.VolumeUnit); err != nil {
		return pkgerrors.Normalize(err, pkgerrors.CodeValidation, "invalid volume unit")
	}
	return nil
}

func toDTO(item models.Item) (ItemDTO, error) {
	dto, err := FromModel(item)
	if err != nil {
		return ItemDTO{}, pkgerrors.Normalize(err, pkgerrors.CodeInternal, "map item")
	}
	return dto, nil
}

func mapRepoError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
