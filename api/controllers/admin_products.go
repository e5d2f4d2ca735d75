package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dermacart/dermacart-backend/api/responses"
	"github.com/dermacart/dermacart-backend/api/validators"
	product "github.com/dermacart/dermacart-backend/internal/products"
	"github.com/dermacart/dermacart-backend/pkg/enums"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/logger"
)

type tierPayload struct {
	MinQuantity        int             `json:"min_quantity" validate:"required"`
	MaxQuantity        *int            `json:"max_quantity"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price" validate:"required"`
}

type createProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Brand       *string         `json:"brand"`
	Category    string          `json:"category" validate:"required"`
	Tags        []string        `json:"tags"`
	Description *string         `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price" validate:"required"`
	IsActive    *bool           `json:"is_active"`
	Tiers       []tierPayload   `json:"tiers" validate:"dive"`
}

type updateProductRequest struct {
	SKU         *string          `json:"sku"`
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Tags        *[]string        `json:"tags"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price"`
	IsActive    *bool            `json:"is_active"`
}

type replaceTiersRequest struct {
	Tiers []tierPayload `json:"tiers" validate:"dive"`
}

func tierInputs(payloads []tierPayload) []product.TierInput {
	tiers := make([]product.TierInput, 0, len(payloads))
	for _, p := range payloads {
		tiers = append(tiers, product.TierInput{
			MinQuantity:        p.MinQuantity,
			MaxQuantity:        p.MaxQuantity,
			DiscountPercentage: p.DiscountPercentage,
			DiscountedPrice:    p.DiscountedPrice,
		})
	}
	return tiers
}

// AdminProductsCreate creates a product, tier table included.
func AdminProductsCreate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := enums.ParseProductCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category"))
			return
		}

		input := product.CreateProductInput{
			SKU:         body.SKU,
			Name:        body.Name,
			Brand:       body.Brand,
			Category:    category,
			Tags:        body.Tags,
			Description: body.Description,
			BasePrice:   body.BasePrice,
			IsActive:    true,
			Tiers:       tierInputs(body.Tiers),
		}
		if body.IsActive != nil {
			input.IsActive = *body.IsActive
		}

		dto, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]*product.ProductDTO{"product": dto})
	}
}

// AdminProductsUpdate applies a partial update.
func AdminProductsUpdate(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := product.UpdateProductInput{
			SKU:         body.SKU,
			Name:        body.Name,
			Brand:       body.Brand,
			Tags:        body.Tags,
			Description: body.Description,
			BasePrice:   body.BasePrice,
			IsActive:    body.IsActive,
		}
		if body.Category != nil {
			category, err := enums.ParseProductCategory(*body.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category"))
				return
			}
			input.Category = &category
		}

		dto, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]*product.ProductDTO{"product": dto})
	}
}

// AdminProductsDelete removes a product and its tier table.
func AdminProductsDelete(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminProductsReplaceTiers swaps the whole tier table. The payload is
// validated as one unit; any violation rejects the entire table.
func AdminProductsReplaceTiers(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body replaceTiersRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.ReplaceDiscountTiers(r.Context(), id, tierInputs(body.Tiers))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]*product.ProductDTO{"product": dto})
	}
}
