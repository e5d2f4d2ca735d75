package cart

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func money(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewCartHasSessionAndNoItems(t *testing.T) {
	cart := New()

	if cart.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if !cart.IsEmpty() {
		t.Fatal("expected a new cart to be empty")
	}
	if cart.IsOpen() {
		t.Fatal("expected the drawer closed on a new cart")
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newSessionID()
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		if !strings.Contains(id, "-") {
			t.Fatalf("unexpected session id shape %s", id)
		}
		seen[id] = true
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	cart := New()
	productID := uuid.New()

	first := cart.AddItem(productID, money("100.00"))
	if first.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", first.Quantity)
	}

	cart.AddItem(productID, money("100.00"))
	cart.AddItem(productID, money("100.00"))

	if len(cart.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 after two more adds, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].ID != first.ID {
		t.Fatal("expected the original line to survive repeat adds")
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	cart := New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	cart.AddItem(a, money("10.00"))
	cart.AddItem(b, money("20.00"))
	cart.AddItem(c, money("30.00"))
	cart.AddItem(a, money("10.00"))

	if len(cart.Items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(cart.Items))
	}
	order := []uuid.UUID{cart.Items[0].ProductID, cart.Items[1].ProductID, cart.Items[2].ProductID}
	want := []uuid.UUID{a, b, c}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("line %d: expected product %s, got %s", i, want[i], order[i])
		}
	}
}

func TestRemoveItemDropsLine(t *testing.T) {
	cart := New()
	line := cart.AddItem(uuid.New(), money("50.00"))
	keep := cart.AddItem(uuid.New(), money("60.00"))

	cart.RemoveItem(line.ID)

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line after removal, got %d", len(cart.Items))
	}
	if cart.Items[0].ID != keep.ID {
		t.Fatal("removed the wrong line")
	}

	// absent line is a no-op
	cart.RemoveItem(uuid.New())
	if len(cart.Items) != 1 {
		t.Fatal("removing an absent line must not mutate the cart")
	}
}

func TestUpdateQuantityStoresValueAsGiven(t *testing.T) {
	cart := New()
	line := cart.AddItem(uuid.New(), money("100.00"))

	if !cart.UpdateQuantity(line.ID, 25) {
		t.Fatal("expected the line to be found")
	}
	if cart.Items[0].Quantity != 25 {
		t.Fatalf("expected quantity 25, got %d", cart.Items[0].Quantity)
	}

	// The aggregator does not clamp; rejection happens upstream.
	cart.UpdateQuantity(line.ID, 0)
	if cart.Items[0].Quantity != 0 {
		t.Fatalf("expected quantity stored as-is, got %d", cart.Items[0].Quantity)
	}

	if cart.UpdateQuantity(uuid.New(), 3) {
		t.Fatal("expected false for an unknown line")
	}
}

func TestClearKeepsSessionID(t *testing.T) {
	cart := New()
	session := cart.SessionID
	cart.AddItem(uuid.New(), money("10.00"))
	cart.AddItem(uuid.New(), money("20.00"))

	cart.Clear()

	if !cart.IsEmpty() {
		t.Fatal("expected an empty cart after clear")
	}
	if cart.SessionID != session {
		t.Fatal("clear must not rotate the session id")
	}
}

func TestDrawerToggleDoesNotTouchItems(t *testing.T) {
	cart := New()
	cart.AddItem(uuid.New(), money("10.00"))

	cart.OpenDrawer()
	if !cart.IsOpen() {
		t.Fatal("expected drawer open")
	}
	cart.CloseDrawer()
	if cart.IsOpen() {
		t.Fatal("expected drawer closed")
	}
	if len(cart.Items) != 1 {
		t.Fatal("drawer toggling must not mutate items")
	}
}

func TestTotalItemsSumsQuantities(t *testing.T) {
	cart := New()
	a := cart.AddItem(uuid.New(), money("10.00"))
	b := cart.AddItem(uuid.New(), money("20.00"))
	cart.UpdateQuantity(a.ID, 8)
	cart.UpdateQuantity(b.ID, 3)

	if got := cart.TotalItems(); got != 11 {
		t.Fatalf("expected 11 total items, got %d", got)
	}
}
