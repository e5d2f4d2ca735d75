package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

// Validate checks one tier against the authoring rules and returns every
// violation found, not just the first. An empty slice means the tier is valid.
// This runs only on the authoring surface; read paths stay permissive.
func Validate(tier DiscountTier, basePrice decimal.Decimal) []string {
	var violations []string

	if tier.MinQuantity < 1 {
		violations = append(violations, "min_quantity must be at least 1")
	}
	if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
		violations = append(violations, "max_quantity must be greater than or equal to min_quantity")
	}
	if tier.DiscountPercentage.IsNegative() || tier.DiscountPercentage.GreaterThan(hundred) {
		violations = append(violations, "discount_percentage must be between 0 and 100")
	}
	if !tier.DiscountedPrice.IsPositive() {
		violations = append(violations, "discounted_price must be greater than 0")
	}
	if tier.DiscountedPrice.GreaterThanOrEqual(basePrice) {
		violations = append(violations, "discounted_price must be less than the base price")
	}

	return violations
}

// ValidateTable validates every tier of a table and aggregates the results
// into a single coded error carrying per-tier violation details.
func ValidateTable(tiers []DiscountTier, basePrice decimal.Decimal) error {
	var combined error
	details := map[string][]string{}

	for i, tier := range tiers {
		violations := Validate(tier, basePrice)
		if len(violations) == 0 {
			continue
		}
		key := fmt.Sprintf("tier_%d", i)
		details[key] = violations
		combined = multierr.Append(combined, fmt.Errorf("tier %d: %d violation(s)", i, len(violations)))
	}

	if combined == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "discount tier table is invalid").
		WithDetails(details)
}
