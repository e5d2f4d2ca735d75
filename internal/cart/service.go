package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/internal/pricing"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

// ProductPricing is the slice of product data the cart needs: the live base
// price and the ordered tier table.
type ProductPricing struct {
	ProductID uuid.UUID
	BasePrice decimal.Decimal
	Tiers     []pricing.DiscountTier
}

// PricingSource loads pricing data for a product. Implemented by the product
// service; the cart never touches the database directly.
type PricingSource interface {
	ProductPricing(ctx context.Context, productID uuid.UUID) (*ProductPricing, error)
}

// PricedLine is a line item with its derived prices. Derived values are
// recomputed on every read and never stored. Unavailable marks lines whose
// product has been deactivated or deleted since it was added; such lines are
// priced at the base price copied onto the line at add time.
type PricedLine struct {
	Line               LineItem         `json:"line"`
	EffectiveUnitPrice decimal.Decimal  `json:"effective_unit_price"`
	LineTotal          decimal.Decimal  `json:"line_total"`
	AppliedTierMinQty  *int             `json:"applied_tier_min_qty,omitempty"`
	AppliedTierPct     *decimal.Decimal `json:"applied_tier_pct,omitempty"`
	Unavailable        bool             `json:"unavailable,omitempty"`
}

// Summary is the priced view of a cart.
type Summary struct {
	Lines      []PricedLine    `json:"lines"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Service owns cart lifecycle and pricing reads.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, *Summary, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, *Summary, error)
	UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*Cart, *Summary, error)
	RemoveItem(ctx context.Context, sessionID string, lineID uuid.UUID) (*Cart, *Summary, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
	Summarize(ctx context.Context, cart *Cart) (*Summary, error)
}

type service struct {
	store    Store
	products PricingSource
}

// NewService builds a cart service backed by the provided collaborators.
func NewService(store Store, products PricingSource) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("pricing source required")
	}
	return &service{store: store, products: products}, nil
}

// Get loads the cart for the session, creating and persisting an empty cart
// when the session is unknown.
func (s *service) Get(ctx context.Context, sessionID string) (*Cart, *Summary, error) {
	cart, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := s.Summarize(ctx, cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, summary, nil
}

// AddItem merges the product into the cart and persists the mutation. The
// base price is copied onto the line at add time.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, *Summary, error) {
	if productID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	priced, err := s.products.ProductPricing(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	cart, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	cart.AddItem(productID, priced.BasePrice)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, nil, err
	}

	summary, err := s.Summarize(ctx, cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, summary, nil
}

// UpdateQuantity sets the quantity on the identified line. The value is
// stored as given; the HTTP layer rejects non-positive input before it
// reaches here.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*Cart, *Summary, error) {
	cart, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if !cart.UpdateQuantity(lineID, quantity) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, nil, err
	}

	summary, err := s.Summarize(ctx, cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, summary, nil
}

// RemoveItem drops the identified line; removing an absent line still
// persists (and is not an error).
func (s *service) RemoveItem(ctx context.Context, sessionID string, lineID uuid.UUID) (*Cart, *Summary, error) {
	cart, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	cart.RemoveItem(lineID)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, nil, err
	}

	summary, err := s.Summarize(ctx, cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, summary, nil
}

// Clear empties the cart unconditionally and persists the empty state.
func (s *service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	cart, err := s.hydrate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Summarize recomputes every derived price from the live tier tables. Nothing
// is cached so tier edits are reflected on the next read. A line whose product
// can no longer be priced (deactivated or deleted after it was added) is kept
// at its stored base price and flagged, never turned into a read failure;
// availability is only enforced at AddItem time.
func (s *service) Summarize(ctx context.Context, cart *Cart) (*Summary, error) {
	summary := &Summary{
		Lines:      make([]PricedLine, 0, len(cart.Items)),
		TotalItems: cart.TotalItems(),
		TotalPrice: decimal.Zero,
	}

	for _, item := range cart.Items {
		priced, err := s.products.ProductPricing(ctx, item.ProductID)
		if err != nil {
			if !productGone(err) {
				return nil, err
			}
			priced = nil
		}

		line := PricedLine{Line: item, Unavailable: priced == nil}
		var tier *pricing.DiscountTier
		if priced != nil {
			tier = pricing.Resolve(priced.Tiers, item.Quantity)
		}
		if tier == nil {
			line.EffectiveUnitPrice = item.UnitBasePrice
		} else {
			line.EffectiveUnitPrice = tier.UnitPrice(priced.BasePrice)
			minQty := tier.MinQuantity
			pct := tier.DiscountPercentage
			line.AppliedTierMinQty = &minQty
			line.AppliedTierPct = &pct
		}

		total, err := pricing.LineTotal(line.EffectiveUnitPrice, item.Quantity)
		if err != nil {
			return nil, err
		}
		line.LineTotal = total

		summary.TotalPrice = summary.TotalPrice.Add(total)
		summary.Lines = append(summary.Lines, line)
	}

	return summary, nil
}

// productGone reports whether a pricing lookup failed because the product is
// missing or inactive, as opposed to an infrastructure error.
func productGone(err error) bool {
	coded := pkgerrors.As(err)
	if coded == nil {
		return false
	}
	switch coded.Code() {
	case pkgerrors.CodeNotFound, pkgerrors.CodeStateConflict:
		return true
	}
	return false
}

func (s *service) hydrate(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID != "" {
		cart, err := s.store.Load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}

	cart := New()
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
