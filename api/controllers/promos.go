package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/api/middleware"
	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/promos"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

type promoApplyRequest struct {
	Code string `json:"code" validate:"required"`
}

// PromoApply validates and applies a promo code to the session's cart. The
// engine reports failures as data, so this handler always answers 200 with a
// success flag, mirroring what the storefront renders inline.
func PromoApply(engine *promos.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("promo"))
			return
		}
		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, unavailable("cart session"))
			return
		}
		var body promoApplyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, engine.Apply(r.Context(), sessionID, body.Code))
	}
}

func PromoRemove(engine *promos.Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("promo"))
			return
		}
		sessionID := middleware.CartSessionFromContext(r.Context())
		if err := engine.Remove(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

type promoCodeRequest struct {
	Code      string        `json:"code" validate:"required"`
	Enabled   *bool         `json:"enabled,omitempty"`
	MinAmount money.Amount  `json:"min_amount"`
	Type      *string       `json:"type,omitempty" validate:"omitempty,oneof=percent fixed"`
	Value     *money.Amount `json:"value,omitempty"`
	Discount  *money.Amount `json:"discount,omitempty"`
}

func (p promoCodeRequest) toModel(id uuid.UUID) *models.PromoCode {
	return &models.PromoCode{
		ID:        id,
		Code:      p.Code,
		Enabled:   p.Enabled,
		MinAmount: p.MinAmount,
		Type:      p.Type,
		Value:     p.Value,
		Discount:  p.Discount,
	}
}

func AdminPromoList(svc promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		codes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, codes)
	}
}

func AdminPromoCreate(svc promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body promoCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.Create(r.Context(), body.toModel(uuid.Nil))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, code)
	}
}

func AdminPromoUpdate(svc promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "promoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body promoCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		code, err := svc.Update(r.Context(), body.toModel(id))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, code)
	}
}

func AdminPromoDelete(svc promos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "promoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
