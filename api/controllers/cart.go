package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dermacart/dermacart-backend/api/middleware"
	"github.com/dermacart/dermacart-backend/api/responses"
	"github.com/dermacart/dermacart-backend/api/validators"
	"github.com/dermacart/dermacart-backend/internal/cart"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

type cartResponse struct {
	SessionID string          `json:"session_id"`
	Items     []cart.LineItem `json:"items"`
	Summary   *cart.Summary   `json:"summary,omitempty"`
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func writeCart(w http.ResponseWriter, status int, c *cart.Cart, summary *cart.Summary) {
	// The session rides a response header so first-visit clients can adopt it.
	w.Header().Set(cartSessionHeader, c.SessionID)
	responses.WriteSuccessStatus(w, status, cartResponse{
		SessionID: c.SessionID,
		Items:     c.Items,
		Summary:   summary,
	})
}

// CartGet returns the session's cart with freshly computed totals.
func CartGet(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		c, summary, err := svc.Get(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, http.StatusOK, c, summary)
	}
}

// CartAddItem merges a product into the cart. Repeating the call increments
// the existing line's quantity by one.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithProductID(r.Context(), body.ProductID.String())

		c, summary, err := svc.AddItem(ctx, middleware.SessionFromContext(ctx), body.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		writeCart(w, http.StatusOK, c, summary)
	}
}

// CartUpdateQuantity sets an exact quantity on one line. Quantities below one
// are rejected here; the aggregator itself stores whatever it is given.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		lineID, err := validators.ParsePathUUID(chi.URLParam(r, "lineId"), "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, summary, err := svc.UpdateQuantity(r.Context(), middleware.SessionFromContext(r.Context()), lineID, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, http.StatusOK, c, summary)
	}
}

// CartRemoveItem drops one line from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		lineID, err := validators.ParsePathUUID(chi.URLParam(r, "lineId"), "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		c, summary, err := svc.RemoveItem(r.Context(), middleware.SessionFromContext(r.Context()), lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, http.StatusOK, c, summary)
	}
}

// CartClear empties the cart and keeps the session.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		c, err := svc.Clear(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCart(w, http.StatusOK, c, nil)
	}
}
