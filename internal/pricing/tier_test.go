package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func price(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

// The bulk table used across the resolver and cart tests:
// 1-5 at $100 (0%), 6-10 at $97.36 (2.64%), 11-20 at $96.04 (3.96%), 21+ at $94.72 (5.28%).
func bulkTiers() []DiscountTier {
	return []DiscountTier{
		{MinQuantity: 1, MaxQuantity: intPtr(5), DiscountPercentage: price("0"), DiscountedPrice: price("100.00")},
		{MinQuantity: 6, MaxQuantity: intPtr(10), DiscountPercentage: price("2.64"), DiscountedPrice: price("97.36")},
		{MinQuantity: 11, MaxQuantity: intPtr(20), DiscountPercentage: price("3.96"), DiscountedPrice: price("96.04")},
		{MinQuantity: 21, DiscountPercentage: price("5.28"), DiscountedPrice: price("94.72")},
	}
}

func TestResolvePicksTierByQuantity(t *testing.T) {
	tiers := bulkTiers()

	cases := []struct {
		quantity  int
		wantPrice string
	}{
		{1, "100.00"},
		{5, "100.00"},
		{6, "97.36"},
		{8, "97.36"},
		{10, "97.36"},
		{11, "96.04"},
		{20, "96.04"}, // inclusive upper bound, not the 21+ tier
		{21, "94.72"},
		{500, "94.72"},
	}

	for _, tc := range cases {
		tier := Resolve(tiers, tc.quantity)
		if tier == nil {
			t.Fatalf("quantity %d: expected a tier", tc.quantity)
		}
		if tier.DiscountedPrice.String() != price(tc.wantPrice).String() {
			t.Fatalf("quantity %d: expected price %s, got %s", tc.quantity, tc.wantPrice, tier.DiscountedPrice)
		}
	}
}

func TestResolveBelowSmallestTierReturnsNil(t *testing.T) {
	tiers := []DiscountTier{
		{MinQuantity: 10, MaxQuantity: intPtr(20), DiscountedPrice: price("90.00")},
		{MinQuantity: 21, DiscountedPrice: price("85.00")},
	}

	for quantity := 1; quantity < 10; quantity++ {
		if tier := Resolve(tiers, quantity); tier != nil {
			t.Fatalf("quantity %d below smallest min should resolve to nil, got %+v", quantity, tier)
		}
	}
}

func TestResolveEmptyTableReturnsNil(t *testing.T) {
	if tier := Resolve(nil, 8); tier != nil {
		t.Fatalf("nil table should resolve to nil, got %+v", tier)
	}
	if tier := Resolve([]DiscountTier{}, 8); tier != nil {
		t.Fatalf("empty table should resolve to nil, got %+v", tier)
	}
}

func TestResolveReturnedTierContainsQuantity(t *testing.T) {
	tiers := bulkTiers()
	for quantity := 1; quantity <= 100; quantity++ {
		tier := Resolve(tiers, quantity)
		if tier == nil {
			t.Fatalf("quantity %d: expected a tier", quantity)
		}
		if quantity < tier.MinQuantity {
			t.Fatalf("quantity %d below tier min %d", quantity, tier.MinQuantity)
		}
		if tier.MaxQuantity != nil && quantity > *tier.MaxQuantity {
			t.Fatalf("quantity %d above tier max %d", quantity, *tier.MaxQuantity)
		}
	}
}

func TestResolveDiscountMonotonicOnWellFormedTable(t *testing.T) {
	tiers := bulkTiers()
	previous := decimal.NewFromInt(-1)
	for quantity := 1; quantity <= 60; quantity++ {
		tier := Resolve(tiers, quantity)
		if tier == nil {
			t.Fatalf("quantity %d: expected a tier", quantity)
		}
		if tier.DiscountPercentage.LessThan(previous) {
			t.Fatalf("discount decreased at quantity %d: %s < %s", quantity, tier.DiscountPercentage, previous)
		}
		previous = tier.DiscountPercentage
	}
}

func TestResolveFirstMatchWinsOnOverlap(t *testing.T) {
	// Deliberately malformed: ranges overlap at 5-10. The resolver must not
	// crash and must take the first structural match in table order.
	tiers := []DiscountTier{
		{MinQuantity: 1, MaxQuantity: intPtr(10), DiscountedPrice: price("95.00")},
		{MinQuantity: 5, MaxQuantity: intPtr(20), DiscountedPrice: price("90.00")},
	}

	tier := Resolve(tiers, 7)
	if tier == nil {
		t.Fatal("expected a tier")
	}
	if tier.DiscountedPrice.String() != "95" {
		t.Fatalf("expected first match to win, got price %s", tier.DiscountedPrice)
	}
}

func TestResolveCopiesTheTier(t *testing.T) {
	tiers := bulkTiers()
	tier := Resolve(tiers, 8)
	if tier == nil {
		t.Fatal("expected a tier")
	}
	tier.MinQuantity = 999
	if tiers[1].MinQuantity == 999 {
		t.Fatal("resolver must not expose the table's backing array")
	}
}

func TestUnitPricePrefersStoredPrice(t *testing.T) {
	base := price("100.00")
	tier := DiscountTier{
		MinQuantity: 6,
		// stored price deliberately disagrees with the percentage
		DiscountPercentage: price("10"),
		DiscountedPrice:    price("97.36"),
	}
	if got := tier.UnitPrice(base); got.String() != "97.36" {
		t.Fatalf("stored price should be authoritative, got %s", got)
	}
}

func TestUnitPriceDerivesWhenNoStoredPrice(t *testing.T) {
	base := price("200.00")
	tier := DiscountTier{MinQuantity: 6, DiscountPercentage: price("25")}
	if got := tier.UnitPrice(base); !got.Equal(price("150.00")) {
		t.Fatalf("expected derived price 150.00, got %s", got)
	}
}

func TestUnboundedTier(t *testing.T) {
	bounded := DiscountTier{MinQuantity: 1, MaxQuantity: intPtr(5)}
	open := DiscountTier{MinQuantity: 21}

	if bounded.Unbounded() {
		t.Fatal("tier with max should not be unbounded")
	}
	if !open.Unbounded() {
		t.Fatal("tier without max should be unbounded")
	}
	if !open.Contains(1000000) {
		t.Fatal("unbounded tier should contain any quantity above its min")
	}
}
