package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/enums"
)

// Item is a packable thing. Weight and volume keep the unit the user entered.
type Item struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	ContainerID *uuid.UUID         `gorm:"column:container_id;type:uuid;index"`
	Name        string             `gorm:"column:name;not null"`
	Category    enums.ItemCategory `gorm:"column:category;type:text;not null"`
	Weight      float64            `gorm:"column:weight;type:numeric(10,3);not null"`
	WeightUnit  enums.WeightUnit   `gorm:"column:weight_unit;type:text;not null"`
	Volume      float64            `gorm:"column:volume;type:numeric(10,3);not null"`
	VolumeUnit  enums.VolumeUnit   `gorm:"column:volume_unit;type:text;not null"`
	Color       *string            `gorm:"column:color"`
	IsFragile   bool               `gorm:"column:is_fragile;not null;default:false"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string { return "items" }

func (i *Item) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
