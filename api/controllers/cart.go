package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/api/middleware"
	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/cart"
	pkgerrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

type cartLineRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	VariantName string    `json:"variant_name" validate:"required"`
	Quantity    int       `json:"quantity"`
}

// cartView decorates the raw state with the derived figures the SPA renders.
type cartView struct {
	cart.State
	Subtotal   money.Amount `json:"subtotal"`
	Total      money.Amount `json:"total"`
	TotalItems int          `json:"total_items"`
}

func newCartView(state cart.State) cartView {
	return cartView{
		State:      state,
		Subtotal:   state.Subtotal(),
		Total:      state.Total(money.Zero()),
		TotalItems: state.TotalItems(),
	}
}

func cartSession(r *http.Request) (string, error) {
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, nil
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body cartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		qty := body.Quantity
		if qty == 0 {
			qty = 1
		}
		state, err := svc.Add(r.Context(), sessionID, body.ProductID, body.VariantName, qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body cartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.UpdateQuantity(r.Context(), sessionID, body.ProductID, body.VariantName, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body cartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.Remove(r.Context(), sessionID, body.ProductID, body.VariantName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state))
	}
}
