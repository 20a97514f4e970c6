package containers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/internal/items"
	"github.com/beggy/beggy-backend/internal/repo"
	"github.com/beggy/beggy-backend/pkg/db/models"
	"github.com/beggy/beggy-backend/pkg/enums"
	"github.com/beggy/beggy-backend/pkg/pagination"
)

// Repository persists bags and suitcases.
type Repository struct {
	repo.Base
}

// NewRepository constructs a containers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// InTx runs fn with container and item repositories sharing one transaction.
func (r *Repository) InTx(ctx context.Context, fn func(containers *Repository, items *items.Repository) error) error {
	return r.WithTx(ctx, func(tx repo.Base) error {
		return fn(&Repository{Base: tx}, &items.Repository{Base: tx})
	})
}

func (r *Repository) Create(ctx context.Context, c *models.Container) error {
	return r.DB(ctx).Create(c).Error
}

// FindByID loads a container of the given kind owned by ownerID.
func (r *Repository) FindByID(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) (*models.Container, error) {
	var c models.Container
	err := r.DB(ctx).
		Scopes(repo.OwnedBy("containers", ownerID)).
		Where("kind = ?", kind).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns a cursor page of the owner's containers of kind, newest first.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, params pagination.Params) (pagination.Page[models.Container], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return pagination.Page[models.Container]{}, err
	}

	var rows []models.Container
	err = r.DB(ctx).Model(&models.Container{}).
		Scopes(repo.OwnedBy("containers", ownerID), pagination.Scope("containers", cursor, params.Limit)).
		Where("kind = ?", kind).
		Find(&rows).Error
	if err != nil {
		return pagination.Page[models.Container]{}, err
	}
	return pagination.Trim(rows, params.Limit, func(c models.Container) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	}), nil
}

// Update writes every mutable column of c.
func (r *Repository) Update(ctx context.Context, c *models.Container) error {
	res := r.DB(ctx).Model(&models.Container{}).
		Scopes(repo.OwnedBy("containers", c.UserID)).
		Where("id = ? AND kind = ?", c.ID, c.Kind).
		Updates(map[string]any{
			"name":         c.Name,
			"description":  c.Description,
			"color":        c.Color,
			"brand":        c.Brand,
			"style":        c.Style,
			"max_weight":   c.MaxWeight,
			"max_capacity": c.MaxCapacity,
			"is_default":   c.IsDefault,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearDefault unsets the default flag on every container of kind owned by ownerID.
func (r *Repository) ClearDefault(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind) error {
	return r.DB(ctx).Model(&models.Container{}).
		Scopes(repo.OwnedBy("containers", ownerID)).
		Where("kind = ? AND is_default = ?", kind, true).
		Updates(map[string]any{"is_default": false, "updated_at": time.Now().UTC()}).Error
}

func (r *Repository) Delete(ctx context.Context, ownerID uuid.UUID, kind enums.ContainerKind, id uuid.UUID) error {
	res := r.DB(ctx).
		Scopes(repo.OwnedBy("containers", ownerID)).
		Where("id = ? AND kind = ?", id, kind).
		Delete(&models.Container{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
