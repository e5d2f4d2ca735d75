package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dermacart/dermacart-backend/api/middleware"
	"github.com/dermacart/dermacart-backend/api/responses"
	"github.com/dermacart/dermacart-backend/api/validators"
	"github.com/dermacart/dermacart-backend/internal/compare"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/logger"
)

type compareAddRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

func requireSession(r *http.Request) (string, error) {
	session := middleware.SessionFromContext(r.Context())
	if session == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "a cart session header is required")
	}
	return session, nil
}

// CompareGet lists the products the session is comparing.
func CompareGet(svc compare.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compare service unavailable"))
			return
		}

		session, err := requireSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		set, err := svc.Get(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, set)
	}
}

// CompareAdd adds a product to the comparison set, capped at four.
func CompareAdd(svc compare.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compare service unavailable"))
			return
		}

		session, err := requireSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body compareAddRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		set, err := svc.Add(r.Context(), session, body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, set)
	}
}

// CompareRemove drops a product from the comparison set.
func CompareRemove(svc compare.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compare service unavailable"))
			return
		}

		session, err := requireSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		set, err := svc.Remove(r.Context(), session, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, set)
	}
}

// CompareClear empties the comparison set.
func CompareClear(svc compare.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "compare service unavailable"))
			return
		}

		session, err := requireSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Clear(r.Context(), session); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
