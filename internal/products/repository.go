package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
	"github.com/dermacart/dermacart-backend/pkg/pagination"
)

// Repository wires together all product-related persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the product with its tiers.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the full product row. Tiers are managed separately through
// ReplaceDiscountTiers.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).
		Omit("Tiers").
		Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product; tiers cascade at the schema level.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads the product with its tier table in display order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, min_quantity ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySKU loads the product by its unique SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a page of products ordered by newest first, keyed by a
// (created_at, id) cursor. The caller passes the buffered limit; one extra row
// signals another page.
func (r *Repository) List(ctx context.Context, filters ListFilters, cursor *pagination.Cursor, limit int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, min_quantity ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceDiscountTiers swaps the product's whole tier table for the given
// rows. Positions follow slice order. Callers wanting atomicity run this
// inside a transaction via WithTx.
func (r *Repository) ReplaceDiscountTiers(ctx context.Context, productID uuid.UUID, tiers []models.ProductDiscountTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductDiscountTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		tiers[i].ProductID = productID
		tiers[i].Position = i
	}
	return tx.Create(&tiers).Error
}

// ListDiscountTiers returns the product's tier table in display order.
func (r *Repository) ListDiscountTiers(ctx context.Context, productID uuid.UUID) ([]models.ProductDiscountTier, error) {
	var tiers []models.ProductDiscountTier
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position ASC, min_quantity ASC").
		Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category   *enums.ProductCategory `json:"category,omitempty"`
	ActiveOnly bool                   `json:"active_only,omitempty"`
}
