package pricing

import "github.com/shopspring/decimal"

// DiscountTier is one quantity range of a product's bulk pricing table.
// A nil MaxQuantity means the range is open-ended ("and above").
type DiscountTier struct {
	MinQuantity        int
	MaxQuantity        *int
	DiscountPercentage decimal.Decimal
	DiscountedPrice    decimal.Decimal
}

// Unbounded reports whether the tier has no upper quantity bound.
func (t DiscountTier) Unbounded() bool {
	return t.MaxQuantity == nil
}

// Contains reports whether the quantity falls inside the tier's inclusive range.
func (t DiscountTier) Contains(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}

// UnitPrice returns the per-unit price this tier yields for the given base
// price. The stored discounted price is authoritative; the percentage is only
// used to derive a price when no stored price is present.
func (t DiscountTier) UnitPrice(basePrice decimal.Decimal) decimal.Decimal {
	if t.DiscountedPrice.IsPositive() {
		return t.DiscountedPrice
	}
	return DiscountedPrice(basePrice, t.DiscountPercentage)
}

// Resolve returns the first tier, in table order, whose range contains the
// requested quantity, or nil when none matches. It neither sorts nor validates
// the table: on overlapping or unordered input the first structural match wins.
func Resolve(tiers []DiscountTier, quantity int) *DiscountTier {
	for i := range tiers {
		if tiers[i].Contains(quantity) {
			match := tiers[i]
			return &match
		}
	}
	return nil
}
