package controllers

import (
	"net/http"

	"github.com/fermedirect/storefront-backend/api/middleware"
	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/checkout"
	"github.com/fermedirect/storefront-backend/pkg/logger"
)

type checkoutAdvanceRequest struct {
	Selection checkout.Selection `json:"selection"`
}

// CheckoutAdvance validates one forward wizard transition and returns the
// updated selection. The selection itself lives client-side.
func CheckoutAdvance(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout"))
			return
		}
		sessionID := middleware.CartSessionFromContext(r.Context())
		var body checkoutAdvanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		next, err := svc.Advance(r.Context(), sessionID, body.Selection)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, next)
	}
}

// CheckoutComplete renders the order recap, hands back the share links, and
// clears the cart. Terminal: there is no undo.
func CheckoutComplete(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("checkout"))
			return
		}
		sessionID := middleware.CartSessionFromContext(r.Context())
		var body checkoutAdvanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		completion, err := svc.Complete(r.Context(), sessionID, body.Selection)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, completion)
	}
}
