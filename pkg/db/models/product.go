package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/pkg/enums"
)

// Product represents a catalog listing for a medical/aesthetic item.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string                `gorm:"column:sku;not null;uniqueIndex"`
	Name        string                `gorm:"column:name;not null"`
	Brand       *string               `gorm:"column:brand"`
	Category    enums.ProductCategory `gorm:"column:category;not null"`
	Tags        pq.StringArray        `gorm:"column:tags;type:text[]"`
	Description *string               `gorm:"column:description"`
	BasePrice   decimal.Decimal       `gorm:"column:base_price;type:numeric(12,2);not null"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true"`
	Tiers       []ProductDiscountTier `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
