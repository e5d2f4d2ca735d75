package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/internal/pricing"
	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
)

// TierDTO is the serialized view of one discount tier. A nil max_quantity
// means "and above".
type TierDTO struct {
	MinQuantity        int             `json:"min_quantity"`
	MaxQuantity        *int            `json:"max_quantity,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
}

// ProductDTO is the serialized product with its tier table.
type ProductDTO struct {
	ID          uuid.UUID             `json:"id"`
	SKU         string                `json:"sku"`
	Name        string                `json:"name"`
	Brand       *string               `json:"brand,omitempty"`
	Category    enums.ProductCategory `json:"category"`
	Tags        []string              `json:"tags,omitempty"`
	Description *string               `json:"description,omitempty"`
	BasePrice   decimal.Decimal       `json:"base_price"`
	IsActive    bool                  `json:"is_active"`
	Tiers       []TierDTO             `json:"tiers"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func toTierDTO(tier models.ProductDiscountTier) TierDTO {
	return TierDTO{
		MinQuantity:        tier.MinQuantity,
		MaxQuantity:        tier.MaxQuantity,
		DiscountPercentage: tier.DiscountPercentage,
		DiscountedPrice:    tier.DiscountedPrice,
	}
}

func toProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		SKU:         product.SKU,
		Name:        product.Name,
		Brand:       product.Brand,
		Category:    product.Category,
		Tags:        product.Tags,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		IsActive:    product.IsActive,
		Tiers:       make([]TierDTO, 0, len(product.Tiers)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, tier := range product.Tiers {
		dto.Tiers = append(dto.Tiers, toTierDTO(tier))
	}
	return dto
}

// pricingTiers maps stored tier rows onto the pricing core's tier type,
// preserving table order.
func pricingTiers(tiers []models.ProductDiscountTier) []pricing.DiscountTier {
	out := make([]pricing.DiscountTier, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, pricing.DiscountTier{
			MinQuantity:        tier.MinQuantity,
			MaxQuantity:        tier.MaxQuantity,
			DiscountPercentage: tier.DiscountPercentage,
			DiscountedPrice:    tier.DiscountedPrice,
		})
	}
	return out
}
