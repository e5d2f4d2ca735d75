package controllers

import (
	"net/http"

	"github.com/dermacart/dermacart-backend/api/responses"
	"github.com/dermacart/dermacart-backend/api/validators"
	"github.com/dermacart/dermacart-backend/internal/newsletter"
	pkgerrors "github.com/dermacart/dermacart-backend/pkg/errors"
	"github.com/dermacart/dermacart-backend/pkg/logger"
)

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterSubscribe opts an email in to the mailing list.
func NewsletterSubscribe(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var body newsletterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sub, err := svc.Subscribe(r.Context(), body.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"email":  sub.Email,
			"status": sub.Status,
		})
	}
}

// NewsletterUnsubscribe opts an email out. Unknown emails return success so
// the endpoint does not reveal which addresses are subscribed.
func NewsletterUnsubscribe(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		var body newsletterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Unsubscribe(r.Context(), body.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "unsubscribed"})
	}
}
