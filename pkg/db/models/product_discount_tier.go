package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDiscountTier captures one quantity range of a product's bulk pricing
// table. A NULL max_quantity means the range is open-ended ("and above").
type ProductDiscountTier struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	MinQuantity        int             `gorm:"column:min_quantity;not null"`
	MaxQuantity        *int            `gorm:"column:max_quantity"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	DiscountedPrice    decimal.Decimal `gorm:"column:discounted_price;type:numeric(12,2);not null"`
	Position           int             `gorm:"column:position;not null;default:0"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
}
