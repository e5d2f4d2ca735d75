package compare

import (
	"github.com/google/uuid"
)

// MaxProducts caps the side-by-side comparison view.
const MaxProducts = 4

// Set holds the product ids a session is comparing. Order is insertion order.
// Comparison is a pure display concern; nothing here is priced.
type Set struct {
	SessionID  string      `json:"session_id"`
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// NewSet returns an empty comparison set for the session.
func NewSet(sessionID string) *Set {
	return &Set{SessionID: sessionID}
}

// Add inserts the product id. Duplicates are a no-op. Returns false when the
// set is already at capacity.
func (s *Set) Add(productID uuid.UUID) bool {
	if s.Contains(productID) {
		return true
	}
	if len(s.ProductIDs) >= MaxProducts {
		return false
	}
	s.ProductIDs = append(s.ProductIDs, productID)
	return true
}

// Remove drops the product id; absent ids are a no-op.
func (s *Set) Remove(productID uuid.UUID) {
	for i, id := range s.ProductIDs {
		if id == productID {
			s.ProductIDs = append(s.ProductIDs[:i], s.ProductIDs[i+1:]...)
			return
		}
	}
}

// Contains reports membership.
func (s *Set) Contains(productID uuid.UUID) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *Set) Clear() {
	s.ProductIDs = nil
}

// IsFull reports whether another product can still be added.
func (s *Set) IsFull() bool {
	return len(s.ProductIDs) >= MaxProducts
}
