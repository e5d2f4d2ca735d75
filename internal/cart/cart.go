package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product-quantity pairing inside a cart. Effective prices are
// never stored on the line; they are derived on read from the live tier table.
type LineItem struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitBasePrice decimal.Decimal `json:"unit_base_price"`
	AddedAt       time.Time       `json:"added_at"`
}

// Cart is an ordered collection of line items, unique by product id. The
// drawer visibility flag is UI state and is deliberately not persisted.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`

	open bool
}

// New creates an empty cart with a fresh session identifier. The identifier is
// a correlation token only, not a credential: a random uuid salted with the
// creation time in milliseconds.
func New() *Cart {
	return &Cart{
		SessionID: newSessionID(),
	}
}

func newSessionID() string {
	return fmt.Sprintf("%s-%x", uuid.NewString(), time.Now().UnixMilli())
}

// OpenDrawer marks the cart drawer visible. Visibility is orthogonal to
// contents; neither call mutates the items.
func (c *Cart) OpenDrawer() { c.open = true }

// CloseDrawer marks the cart drawer hidden.
func (c *Cart) CloseDrawer() { c.open = false }

// IsOpen reports the drawer visibility state.
func (c *Cart) IsOpen() bool { return c.open }

// AddItem merges a product into the cart. When the product is already present
// its quantity is incremented by one; callers wanting an exact quantity must
// use UpdateQuantity. New products append at the end so display order is the
// insertion order.
func (c *Cart) AddItem(productID uuid.UUID, unitBasePrice decimal.Decimal) LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return c.Items[i]
		}
	}

	line := LineItem{
		ID:            uuid.New(),
		ProductID:     productID,
		Quantity:      1,
		UnitBasePrice: unitBasePrice,
		AddedAt:       time.Now().UTC(),
	}
	c.Items = append(c.Items, line)
	return line
}

// RemoveItem drops the line with the given line identifier. Removing an
// absent line is a no-op, not an error.
func (c *Cart) RemoveItem(lineID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity stores the given quantity on the line as-is. The aggregator
// does not clamp; callers are expected to reject non-positive values before
// reaching this point.
func (c *Cart) UpdateQuantity(lineID uuid.UUID, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the collection unconditionally. The session id survives.
func (c *Cart) Clear() {
	c.Items = nil
}

// FindLine returns the line with the given id, or nil.
func (c *Cart) FindLine(lineID uuid.UUID) *LineItem {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}

// TotalItems sums all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
