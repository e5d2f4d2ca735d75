package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/internal/cart"
	"github.com/dermacart/dermacart-backend/internal/compare"
	"github.com/dermacart/dermacart-backend/internal/orders"
	product "github.com/dermacart/dermacart-backend/internal/products"
	"github.com/dermacart/dermacart-backend/pkg/config"
	"github.com/dermacart/dermacart-backend/pkg/db/models"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubProductService struct{}

func (stubProductService) ListProducts(context.Context, product.ListProductsInput) (*product.ProductListResult, error) {
	return &product.ProductListResult{Products: []product.ProductDTO{}}, nil
}

func (stubProductService) GetProduct(context.Context, uuid.UUID) (*product.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubProductService) CreateProduct(context.Context, product.CreateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) UpdateProduct(context.Context, uuid.UUID, product.UpdateProductInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) DeleteProduct(context.Context, uuid.UUID) error { return nil }

func (stubProductService) ReplaceDiscountTiers(context.Context, uuid.UUID, []product.TierInput) (*product.ProductDTO, error) {
	return &product.ProductDTO{}, nil
}

func (stubProductService) ProductPricing(context.Context, uuid.UUID) (*cart.ProductPricing, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubProductService) ProductSnapshot(context.Context, uuid.UUID) (*orders.ProductSnapshot, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type stubCartService struct{}

func (stubCartService) Get(_ context.Context, sessionID string) (*cart.Cart, *cart.Summary, error) {
	c := cart.New()
	if sessionID != "" {
		c.SessionID = sessionID
	}
	return c, &cart.Summary{Lines: []cart.PricedLine{}, TotalPrice: decimal.Zero}, nil
}

func (s stubCartService) AddItem(ctx context.Context, sessionID string, _ uuid.UUID) (*cart.Cart, *cart.Summary, error) {
	return s.Get(ctx, sessionID)
}

func (s stubCartService) UpdateQuantity(ctx context.Context, sessionID string, _ uuid.UUID, _ int) (*cart.Cart, *cart.Summary, error) {
	return s.Get(ctx, sessionID)
}

func (s stubCartService) RemoveItem(ctx context.Context, sessionID string, _ uuid.UUID) (*cart.Cart, *cart.Summary, error) {
	return s.Get(ctx, sessionID)
}

func (stubCartService) Clear(_ context.Context, sessionID string) (*cart.Cart, error) {
	c := cart.New()
	if sessionID != "" {
		c.SessionID = sessionID
	}
	return c, nil
}

func (stubCartService) Summarize(context.Context, *cart.Cart) (*cart.Summary, error) {
	return &cart.Summary{}, nil
}

type stubCompareService struct{}

func (stubCompareService) Get(_ context.Context, sessionID string) (*compare.Set, error) {
	return compare.NewSet(sessionID), nil
}

func (stubCompareService) Add(_ context.Context, sessionID string, _ uuid.UUID) (*compare.Set, error) {
	return compare.NewSet(sessionID), nil
}

func (stubCompareService) Remove(_ context.Context, sessionID string, _ uuid.UUID) (*compare.Set, error) {
	return compare.NewSet(sessionID), nil
}

func (stubCompareService) Clear(context.Context, string) error { return nil }

type stubNewsletterService struct{}

func (stubNewsletterService) Subscribe(_ context.Context, email string) (*models.NewsletterSubscription, error) {
	return &models.NewsletterSubscription{Email: email}, nil
}

func (stubNewsletterService) Unsubscribe(context.Context, string) error { return nil }

type stubOrderService struct{}

func (stubOrderService) Checkout(context.Context, string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
}

func (stubOrderService) GetOrder(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (stubOrderService) ListOrders(context.Context, string) ([]models.Order, error) {
	return []models.Order{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})

	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		stubPinger{},
		nil,
		stubProductService{},
		stubCartService{},
		stubCompareService{},
		stubNewsletterService{},
		stubOrderService{},
	)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-DermaCart-Env") != "test" {
		t.Fatal("expected the env header on health responses")
	}

	rec = doRequest(t, router, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
}

func TestPublicPingEchoesSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/public/ping", "", map[string]string{
		"X-Cart-Session": "abc-123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data["cart_session"] != "abc-123" {
		t.Fatalf("expected the session echoed, got %q", payload.Data["cart_session"])
	}
}

func TestCartRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/cart", "", map[string]string{
		"X-Cart-Session": "session-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Cart-Session") != "session-1" {
		t.Fatal("expected the session echoed in the response header")
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/cart/items", `{"product_id":"not-a-uuid"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad add payload: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPatch, "/api/v1/cart/items/not-a-uuid", `{"quantity":2}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad line id: expected 400, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPatch,
		"/api/v1/cart/items/"+uuid.NewString(), `{"quantity":0}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero quantity: expected 400, got %d", rec.Code)
	}
}

func TestProductsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/products/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %s", payload.Error.Code)
	}
}

func TestCheckoutEmptyCartIs422(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/checkout", "", map[string]string{
		"X-Cart-Session": "session-1",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestCompareRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/compare", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a session header, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/v1/compare", "", map[string]string{
		"X-Cart-Session": "session-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with a session, got %d", rec.Code)
	}
}

func TestNewsletterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/newsletter/subscribe", `{"email":"not-an-email"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad email, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/v1/newsletter/subscribe", `{"email":"clinic@example.com"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}
