package pricing

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// DiscountedPrice derives a per-unit price from a base price and a percentage
// discount: base × (1 − pct/100). Arithmetic stays full precision; rounding
// to two decimals happens only at presentation time via FormatPrice.
func DiscountedPrice(basePrice, discountPercentage decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercentage.Div(hundred))
	return basePrice.Mul(factor)
}

// LineTotal multiplies the effective unit price by the line quantity. A
// non-positive quantity is a caller contract violation and yields an error
// rather than a nonsensical total.
func LineTotal(effectiveUnitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return effectiveUnitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// EffectiveUnitPrice resolves the tier table at the given quantity and returns
// the applicable per-unit price, falling back to the base price when no tier
// matches or the table is empty.
func EffectiveUnitPrice(tiers []DiscountTier, basePrice decimal.Decimal, quantity int) decimal.Decimal {
	tier := Resolve(tiers, quantity)
	if tier == nil {
		return basePrice
	}
	return tier.UnitPrice(basePrice)
}

// FormatPrice renders a price for display with two decimal places.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(2)
}
