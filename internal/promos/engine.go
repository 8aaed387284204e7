package promos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

// Messages shown to shoppers. The storefront is French-facing, so these are
// part of the public contract and must not be reworded casually.
const (
	msgInvalidCode   = "Code promo invalide"
	msgInvalidFormat = "Format de code promo invalide"
	msgServerError   = "Erreur serveur promo"
)

// Result is what the storefront renders after a promo attempt. Failures are
// data, not errors: the engine never propagates an error to its caller.
type Result struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Discount money.Amount `json:"discount,omitempty"`
}

type promoLister interface {
	List(ctx context.Context) ([]models.PromoCode, error)
}

type cartPromoWriter interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	SetPromo(ctx context.Context, sessionID string, code string, discount money.Amount) (cart.State, error)
	RemovePromo(ctx context.Context, sessionID string) (cart.State, error)
}

// Engine validates promo codes against a session's cart and writes the
// resolved discount back into it.
type Engine struct {
	promos promoLister
	carts  cartPromoWriter
	logg   *logger.Logger
}

type EngineParams struct {
	Promos promoLister
	Carts  cartPromoWriter
	Logger *logger.Logger
}

func NewEngine(params EngineParams) (*Engine, error) {
	if params.Promos == nil {
		return nil, errors.New("promo engine requires a promo lister")
	}
	if params.Carts == nil {
		return nil, errors.New("promo engine requires a cart writer")
	}
	return &Engine{promos: params.Promos, carts: params.Carts, logg: params.Logger}, nil
}

// Apply validates the code against the session's current subtotal. On success
// the cart stores the matched record's original casing and the clamped
// discount; applying a second code overwrites the first, codes never stack.
func (e *Engine) Apply(ctx context.Context, sessionID, code string) Result {
	state, err := e.carts.Get(ctx, sessionID)
	if err != nil {
		return e.serverError(ctx, err)
	}
	codes, err := e.promos.List(ctx)
	if err != nil {
		return e.serverError(ctx, err)
	}

	matched := matchCode(codes, code)
	if matched == nil {
		return Result{Success: false, Message: msgInvalidCode}
	}

	subtotal := state.Subtotal()
	if subtotal.LessThan(matched.MinAmount) {
		return Result{
			Success: false,
			Message: fmt.Sprintf("Montant minimum de %s€ requis (panier actuel : %s€)",
				matched.MinAmount.Format2(), subtotal.Format2()),
		}
	}

	discount, ok := resolveDiscount(*matched, subtotal)
	if !ok {
		return Result{Success: false, Message: msgInvalidFormat}
	}
	discount = discount.Min(subtotal)

	if _, err := e.carts.SetPromo(ctx, sessionID, matched.Code, discount); err != nil {
		return e.serverError(ctx, err)
	}
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Code %s appliqué !", matched.Code),
		Discount: discount,
	}
}

// Remove clears any applied promo from the session's cart.
func (e *Engine) Remove(ctx context.Context, sessionID string) error {
	_, err := e.carts.RemovePromo(ctx, sessionID)
	return err
}

func (e *Engine) serverError(ctx context.Context, err error) Result {
	if e.logg != nil {
		e.logg.Error(ctx, "promo engine failure", err)
	}
	return Result{Success: false, Message: msgServerError}
}

// matchCode finds the first enabled code equal to the input, ignoring case
// and surrounding whitespace. An unset Enabled counts as enabled.
func matchCode(codes []models.PromoCode, input string) *models.PromoCode {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return nil
	}
	for i := range codes {
		if strings.ToLower(codes[i].Code) == needle && codes[i].IsEnabled() {
			return &codes[i]
		}
	}
	return nil
}

// resolveDiscount walks the three legacy shapes in priority order. A percent
// code without a value is malformed rather than a zero discount.
func resolveDiscount(promo models.PromoCode, subtotal money.Amount) (money.Amount, bool) {
	if promo.Type != nil && *promo.Type == "percent" {
		if promo.Value == nil {
			return money.Zero(), false
		}
		return subtotal.Percent(*promo.Value), true
	}
	if (promo.Type != nil && *promo.Type == "fixed") || promo.Value != nil {
		if promo.Value == nil {
			return money.Zero(), false
		}
		return *promo.Value, true
	}
	if promo.Discount != nil {
		return *promo.Discount, true
	}
	return money.Zero(), false
}
