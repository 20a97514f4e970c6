package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/enums"
)

// Container is a bag or suitcase owned by a user. Limits are stored in kilograms and liters.
type Container struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID      uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Kind        enums.ContainerKind   `gorm:"column:kind;type:text;not null"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Color       *string               `gorm:"column:color"`
	Brand       *string               `gorm:"column:brand"`
	Style       *enums.ContainerStyle `gorm:"column:style;type:text"`
	MaxWeight   float64               `gorm:"column:max_weight;type:numeric(10,3);not null"`
	MaxCapacity float64               `gorm:"column:max_capacity;type:numeric(10,3);not null"`
	IsDefault   bool                  `gorm:"column:is_default;not null;default:false"`
	Items       []Item                `gorm:"foreignKey:ContainerID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (Container) TableName() string { return "containers" }

func (c *Container) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
