package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/internal/cart"
	"github.com/dermacart/dermacart-backend/internal/orders"
	"github.com/dermacart/dermacart-backend/internal/pricing"
	"github.com/dermacart/dermacart-backend/pkg/db"
	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/pagination"
)

// Service exposes catalog read paths and admin product management.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ReplaceDiscountTiers(ctx context.Context, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error)

	// ProductPricing satisfies the cart's pricing source.
	ProductPricing(ctx context.Context, productID uuid.UUID) (*cart.ProductPricing, error)
	// ProductSnapshot satisfies the checkout's catalog source.
	ProductSnapshot(ctx context.Context, productID uuid.UUID) (*orders.ProductSnapshot, error)
}

// TierInput is one authored tier row. A nil MaxQuantity authors an
// open-ended range.
type TierInput struct {
	MinQuantity        int             `json:"min_quantity"`
	MaxQuantity        *int            `json:"max_quantity"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU         string
	Name        string
	Brand       *string
	Category    enums.ProductCategory
	Tags        []string
	Description *string
	BasePrice   decimal.Decimal
	IsActive    bool
	Tiers       []TierInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU         *string
	Name        *string
	Brand       *string
	Category    *enums.ProductCategory
	Tags        *[]string
	Description *string
	BasePrice   *decimal.Decimal
	IsActive    *bool
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// ProductListResult is one page of the catalog.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
	HasMore    bool         `json:"has_more"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ListProducts returns one catalog page.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	cursor, err := pagination.Decode(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	rows, err := s.repo.List(ctx, input.Filters, cursor, pagination.LimitWithBuffer(input.Pagination.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ProductListResult{Products: make([]ProductDTO, 0, limit)}
	if len(rows) > limit {
		result.HasMore = true
		rows = rows[:limit]
	}
	for i := range rows {
		result.Products = append(result.Products, *toProductDTO(&rows[i]))
	}
	if result.HasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.NextCursor = pagination.Encode(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

// GetProduct loads the public detail view including the tier table.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return toProductDTO(product), nil
}

// CreateProduct validates the payload, including any authored tiers against
// the base price, and inserts the product with its tier table in one
// transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if !input.BasePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be greater than 0")
	}
	if err := validateTierInputs(input.Tiers, input.BasePrice); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindBySKU(ctx, input.SKU); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sku")
	}

	product := &models.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		Brand:       input.Brand,
		Category:    input.Category,
		Tags:        input.Tags,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		IsActive:    input.IsActive,
		Tiers:       tierInputsToModels(input.Tiers),
	}
	if _, err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct applies the provided fields. When the base price changes the
// existing tier table is revalidated against it so a price cut cannot leave
// stored tiers above the new base.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
		}
		product.SKU = sku
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		product.Name = name
	}
	if input.Brand != nil {
		product.Brand = input.Brand
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		product.Category = *input.Category
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.BasePrice != nil {
		if !input.BasePrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price must be greater than 0")
		}
		if err := pricing.ValidateTable(pricingTiers(product.Tiers), *input.BasePrice); err != nil {
			return nil, err
		}
		product.BasePrice = *input.BasePrice
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes the product and its tiers.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// ReplaceDiscountTiers validates the full authored table first and rejects it
// with every violation before touching storage; on success the old table is
// deleted and the new one inserted in a single transaction.
func (s *service) ReplaceDiscountTiers(ctx context.Context, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := validateTierInputs(tiers, product.BasePrice); err != nil {
		return nil, err
	}

	rows := tierInputsToModels(tiers)
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceDiscountTiers(ctx, productID, rows)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace discount tiers")
	}
	return s.GetProduct(ctx, productID)
}

// ProductPricing loads the live base price and tier table for the cart.
// Inactive products cannot be priced into a cart.
func (s *service) ProductPricing(ctx context.Context, productID uuid.UUID) (*cart.ProductPricing, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product pricing")
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is not available")
	}
	return &cart.ProductPricing{
		ProductID: product.ID,
		BasePrice: product.BasePrice,
		Tiers:     pricingTiers(product.Tiers),
	}, nil
}

// validateTierInputs checks the whole authored table against the base price
// and reports every violation at once.
func validateTierInputs(tiers []TierInput, basePrice decimal.Decimal) error {
	return pricing.ValidateTable(tierInputsToPricing(tiers), basePrice)
}

// ProductSnapshot returns the catalog fields frozen onto order lines.
func (s *service) ProductSnapshot(ctx context.Context, productID uuid.UUID) (*orders.ProductSnapshot, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product snapshot")
	}
	return &orders.ProductSnapshot{SKU: product.SKU, Name: product.Name}, nil
}

func tierInputsToPricing(tiers []TierInput) []pricing.DiscountTier {
	out := make([]pricing.DiscountTier, 0, len(tiers))
	for _, tier := range tiers {
		out = append(out, pricing.DiscountTier{
			MinQuantity:        tier.MinQuantity,
			MaxQuantity:        tier.MaxQuantity,
			DiscountPercentage: tier.DiscountPercentage,
			DiscountedPrice:    tier.DiscountedPrice,
		})
	}
	return out
}

func tierInputsToModels(tiers []TierInput) []models.ProductDiscountTier {
	out := make([]models.ProductDiscountTier, 0, len(tiers))
	for i, tier := range tiers {
		out = append(out, models.ProductDiscountTier{
			MinQuantity:        tier.MinQuantity,
			MaxQuantity:        tier.MaxQuantity,
			DiscountPercentage: tier.DiscountPercentage,
			DiscountedPrice:    tier.DiscountedPrice,
			Position:           i,
		})
	}
	return out
}
