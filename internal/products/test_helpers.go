package product

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dermacart/dermacart-backend/pkg/db/models"
	"github.com/dermacart/dermacart-backend/pkg/enums"
)

func mustCreateTestProduct(t *testing.T, tx *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.New(),
		SKU:       fmt.Sprintf("SKU-%s", uuid.NewString()),
		Name:      "Test Serum",
		Category:  enums.ProductCategorySkincare,
		BasePrice: decimal.RequireFromString("100.00"),
		IsActive:  true,
	}
	if err := tx.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}
