package compare

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

func TestSetCapsAtFourProducts(t *testing.T) {
	set := NewSet("s1")
	for i := 0; i < MaxProducts; i++ {
		if !set.Add(uuid.New()) {
			t.Fatalf("add %d should succeed", i)
		}
	}
	if set.Add(uuid.New()) {
		t.Fatal("fifth add should be rejected")
	}
	if len(set.ProductIDs) != MaxProducts {
		t.Fatalf("expected %d products, got %d", MaxProducts, len(set.ProductIDs))
	}
}

func TestSetAddDuplicateIsNoOp(t *testing.T) {
	set := NewSet("s1")
	id := uuid.New()

	if !set.Add(id) || !set.Add(id) {
		t.Fatal("duplicate add should report success")
	}
	if len(set.ProductIDs) != 1 {
		t.Fatalf("expected 1 product, got %d", len(set.ProductIDs))
	}
}

func TestSetRemove(t *testing.T) {
	set := NewSet("s1")
	a, b := uuid.New(), uuid.New()
	set.Add(a)
	set.Add(b)

	set.Remove(a)
	if set.Contains(a) || !set.Contains(b) {
		t.Fatal("expected only the second product to remain")
	}

	set.Remove(uuid.New()) // absent is a no-op
	if len(set.ProductIDs) != 1 {
		t.Fatal("removing an absent product must not mutate the set")
	}
}

type memoryStore struct {
	sets map[string]*Set
}

func newMemoryStore() *memoryStore { return &memoryStore{sets: map[string]*Set{}} }

func (m *memoryStore) Load(_ context.Context, sessionID string) (*Set, error) {
	set, ok := m.sets[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *set
	copied.ProductIDs = append([]uuid.UUID(nil), set.ProductIDs...)
	return &copied, nil
}

func (m *memoryStore) Save(_ context.Context, set *Set) error {
	copied := *set
	copied.ProductIDs = append([]uuid.UUID(nil), set.ProductIDs...)
	m.sets[set.SessionID] = &copied
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sets, sessionID)
	return nil
}

func TestServiceAddPersistsAndCaps(t *testing.T) {
	store := newMemoryStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < MaxProducts; i++ {
		if _, err := svc.Add(ctx, "s1", uuid.New()); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	_, err = svc.Add(ctx, "s1", uuid.New())
	var apiErr *pkgerrors.Error
	if !errors.As(err, &apiErr) || apiErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected a state-conflict error at capacity, got %v", err)
	}

	stored, _ := store.Load(ctx, "s1")
	if len(stored.ProductIDs) != MaxProducts {
		t.Fatalf("expected %d persisted products, got %d", MaxProducts, len(stored.ProductIDs))
	}
}

func TestServiceGetUnknownSessionReturnsEmptySet(t *testing.T) {
	svc, err := NewService(newMemoryStore())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	set, err := svc.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(set.ProductIDs) != 0 || set.SessionID != "unknown" {
		t.Fatal("expected an empty set bound to the session")
	}
}

func TestServiceRemoveAndClear(t *testing.T) {
	store := newMemoryStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	svc.Add(ctx, "s1", a)
	svc.Add(ctx, "s1", b)

	set, err := svc.Remove(ctx, "s1", a)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if set.Contains(a) || !set.Contains(b) {
		t.Fatal("expected only the second product after removal")
	}

	if err := svc.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.sets["s1"]; ok {
		t.Fatal("expected the stored set to be deleted")
	}
}
