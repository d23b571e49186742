package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products. Slug is derived from Name and must stay
// unique among non-deleted rows.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;uniqueIndex:idx_categories_name,where:deleted_at IS NULL" json:"name"`
	Slug        string         `gorm:"size:120;uniqueIndex:idx_categories_slug,where:deleted_at IS NULL" json:"slug"`
	Description string         `gorm:"size:1000" json:"description,omitempty"`
	IsActive    bool           `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
