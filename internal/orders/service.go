package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/internal/cart"
	"github.com/dermacart/dermacart-backend/pkg/db"
	"github.com/dermacart/dermacart-backend/pkg/db/models"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
)

// Service freezes carts into orders.
type Service interface {
	Checkout(ctx context.Context, sessionID string) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, sessionID string) ([]models.Order, error)
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, *cart.Summary, error)
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

// ProductSnapshot is the catalog data frozen onto an order line.
type ProductSnapshot struct {
	SKU  string
	Name string
}

type snapshotSource interface {
	ProductSnapshot(ctx context.Context, productID uuid.UUID) (*ProductSnapshot, error)
}

type orderStore interface {
	WithTx(tx *gorm.DB) *Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Order, error)
}

type service struct {
	repo     orderStore
	dbClient *db.Client
	carts    cartReader
	catalog  snapshotSource
	numbers  NumberSequence
}

// NewService constructs the checkout service.
func NewService(repo *Repository, dbClient *db.Client, carts cartReader, catalog snapshotSource, numbers NumberSequence) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("product snapshot source required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order number sequence required")
	}
	return &service{repo: repo, dbClient: dbClient, carts: carts, catalog: catalog, numbers: numbers}, nil
}

// Checkout freezes the session's cart into an order. Unit prices are resolved
// through the live tier tables at this moment; the resulting snapshot rows are
// inserted in one transaction and the cart is cleared afterwards.
func (s *service) Checkout(ctx context.Context, sessionID string) (*models.Order, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	current, summary, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.SessionID != sessionID || current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Number:        number,
		CartSessionID: sessionID,
		SubtotalPrice: summary.TotalPrice,
		TotalItems:    summary.TotalItems,
		LineItems:     make([]models.OrderLineItem, 0, len(summary.Lines)),
	}
	for _, line := range summary.Lines {
		snapshot, err := s.catalog.ProductSnapshot(ctx, line.Line.ProductID)
		if err != nil {
			return nil, err
		}
		order.LineItems = append(order.LineItems, orderLineFromSummary(line, snapshot))
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	// A failed clear leaves the cart behind but the order stands; the cart
	// expires on its own TTL.
	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return order, nil
	}
	return order, nil
}

// orderLineFromSummary snapshots one priced cart line onto an order row.
func orderLineFromSummary(line cart.PricedLine, snapshot *ProductSnapshot) models.OrderLineItem {
	return models.OrderLineItem{
		ProductID:          line.Line.ProductID,
		ProductSKU:         snapshot.SKU,
		ProductName:        snapshot.Name,
		Quantity:           line.Line.Quantity,
		UnitBasePrice:      line.Line.UnitBasePrice,
		EffectiveUnitPrice: line.EffectiveUnitPrice,
		AppliedTierMinQty:  line.AppliedTierMinQty,
		AppliedTierPct:     line.AppliedTierPct,
		LineTotal:          line.LineTotal,
	}
}

// GetOrder loads one order with its line items.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// ListOrders returns the session's order history.
func (s *service) ListOrders(ctx context.Context, sessionID string) ([]models.Order, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}
	orders, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}
