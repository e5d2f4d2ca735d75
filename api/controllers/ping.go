package controllers

import (
	"net/http"

	"github.com/dermacart/dermacart-backend/api/middleware"
	"github.com/dermacart/dermacart-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "public", "status": "ok"}
		if session := middleware.SessionFromContext(r.Context()); session != "" {
			payload["cart_session"] = session
		}
		responses.WriteSuccess(w, payload)
	}
}
