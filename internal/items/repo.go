package items

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/internal/repo"
	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

// Repository persists items.
type Repository struct {
	repo.Base
}

// NewRepository constructs an items repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).Create(item).Error
}

// FindByID loads an item owned by ownerID.
func (r *Repository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.DB(ctx).Scopes(repo.OwnedBy("items", ownerID)).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns a cursor page of the owner's items, newest first.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, filters ListFilters, params pagination.Params) (pagination.Page[models.Item], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return pagination.Page[models.Item]{}, err
	}

	q := r.DB(ctx).Model(&models.Item{}).Scopes(repo.OwnedBy("items", ownerID))
	if filters.Category != nil {
		q = q.Where("category = ?", *filters.Category)
	}
	switch {
	case filters.ContainerID != nil:
		q = q.Where("container_id = ?", *filters.ContainerID)
	case filters.Unassigned:
		q = q.Where("container_id IS NULL")
	}

	var rows []models.Item
	if err := q.Scopes(pagination.Scope("items", cursor, params.Limit)).Find(&rows).Error; err != nil {
		return pagination.Page[models.Item]{}, err
	}
	return pagination.Trim(rows, params.Limit, func(i models.Item) pagination.Cursor {
		return pagination.Cursor{CreatedAt: i.CreatedAt, ID: i.ID}
	}), nil
}

// ListByContainer returns every item currently assigned to containerID.
func (r *Repository) ListByContainer(ctx context.Context, containerID uuid.UUID) ([]models.Item, error) {
	var rows []models.Item
	err := r.DB(ctx).
		Where("container_id = ?", containerID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// ListByContainers groups the items of several containers by container id.
func (r *Repository) ListByContainers(ctx context.Context, containerIDs []uuid.UUID) (map[uuid.UUID][]models.Item, error) {
	out := make(map[uuid.UUID][]models.Item, len(containerIDs))
	if len(containerIDs) == 0 {
		return out, nil
	}
	var rows []models.Item
	if err := r.DB(ctx).Where("container_id IN ?", containerIDs).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[*row.ContainerID] = append(out[*row.ContainerID], row)
	}
	return out, nil
}

// Update writes every mutable column of item.
func (r *Repository) Update(ctx context.Context, item *models.Item) error {
	res := r.DB(ctx).Model(&models.Item{}).
		Scopes(repo.OwnedBy("items", item.UserID)).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":        item.Name,
			"category":    item.Category,
			"weight":      item.Weight,
			"weight_unit": item.WeightUnit,
			"volume":      item.Volume,
			"volume_unit": item.VolumeUnit,
			"color":       item.Color,
			"is_fragile":  item.IsFragile,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetContainer assigns the item to containerID, or unassigns it when containerID is nil.
func (r *Repository) SetContainer(ctx context.Context, ownerID, itemID uuid.UUID, containerID *uuid.UUID) error {
	res := r.DB(ctx).Model(&models.Item{}).
		Scopes(repo.OwnedBy("items", ownerID)).
		Where("id = ?", itemID).
		Updates(map[string]any{"container_id": containerID, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UnassignAll detaches every item from containerID.
func (r *Repository) UnassignAll(ctx context.Context, containerID uuid.UUID) error {
	return r.DB(ctx).Model(&models.Item{}).
		Where("container_id = ?", containerID).
		Updates(map[string]any{"container_id": nil, "updated_at": time.Now().UTC()}).Error
}

func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.DB(ctx).Scopes(repo.OwnedBy("items", ownerID)).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
