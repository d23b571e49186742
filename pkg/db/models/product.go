package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/enums"
)

// Product is a sellable item inside a category. Quantities are decimal
// so fractional units (kg, l) round-trip exactly; InStock is derived
// from Quantity on every write.
type Product struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	CategoryID        uint             `gorm:"index;not null" json:"categoryId"`
	Category          *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name              string           `gorm:"size:200;uniqueIndex:idx_products_name,where:deleted_at IS NULL" json:"name"`
	Slug              string           `gorm:"size:220;uniqueIndex:idx_products_slug,where:deleted_at IS NULL" json:"slug"`
	Description       string           `gorm:"size:2000" json:"description"`
	ShortDescription  string           `gorm:"size:500" json:"shortDescription,omitempty"`
	Price             decimal.Decimal  `gorm:"type:decimal(10,2)" json:"price"`
	Quantity          decimal.Decimal  `gorm:"type:decimal(12,3)" json:"quantity"`
	UnitType          enums.UnitType   `gorm:"size:16;default:piece" json:"unitType"`
	MinQuantity       *decimal.Decimal `gorm:"type:decimal(12,3)" json:"minQuantity,omitempty"`
	MaxQuantity       *decimal.Decimal `gorm:"type:decimal(12,3)" json:"maxQuantity,omitempty"`
	ManufactureDate   *time.Time       `json:"manufactureDate,omitempty"`
	ExpiryDate        *time.Time       `json:"expiryDate,omitempty"`
	Barcode           string           `gorm:"size:64" json:"barcode,omitempty"`
	InStock           bool             `gorm:"default:true" json:"inStock"`
	LowStockThreshold int              `gorm:"default:10" json:"lowStockThreshold"`
	Weight            *decimal.Decimal `gorm:"type:decimal(10,3)" json:"weight,omitempty"`
	Dimensions        string           `gorm:"size:64" json:"dimensions,omitempty"`
	Brand             string           `gorm:"size:100" json:"brand,omitempty"`
	IsActive          bool             `gorm:"default:true" json:"isActive"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"deletedAt,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
