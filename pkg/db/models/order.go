package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/pkg/enums"
)

// Order freezes a cart at checkout time.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number        string            `gorm:"column:order_number;not null;uniqueIndex"`
	CartSessionID string            `gorm:"column:cart_session_id;not null;index"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'placed'"`
	SubtotalPrice decimal.Decimal   `gorm:"column:subtotal_price;type:numeric(12,2);not null"`
	TotalItems    int               `gorm:"column:total_items;not null"`
	LineItems     []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem snapshots one cart line, including the tier applied at checkout.
type OrderLineItem struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID          uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	ProductSKU         string           `gorm:"column:product_sku;not null"`
	ProductName        string           `gorm:"column:product_name;not null"`
	Quantity           int              `gorm:"column:quantity;not null"`
	UnitBasePrice      decimal.Decimal  `gorm:"column:unit_base_price;type:numeric(12,2);not null"`
	EffectiveUnitPrice decimal.Decimal  `gorm:"column:effective_unit_price;type:numeric(12,2);not null"`
	AppliedTierMinQty  *int             `gorm:"column:applied_tier_min_qty"`
	AppliedTierPct     *decimal.Decimal `gorm:"column:applied_tier_pct;type:numeric(5,2)"`
	LineTotal          decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
}
