package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

// Service mutates per-session carts. Every mutation loads the current state,
// applies the change, and persists the whole snapshot back.
type Service interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Add(ctx context.Context, sessionID string, productID uuid.UUID, variantName string, quantity int) (State, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, variantName string, quantity int) (State, error)
	Remove(ctx context.Context, sessionID string, productID uuid.UUID, variantName string) (State, error)
	Clear(ctx context.Context, sessionID string) (State, error)
	SetPromo(ctx context.Context, sessionID string, code string, discount money.Amount) (State, error)
	RemovePromo(ctx context.Context, sessionID string) (State, error)
}

type stateStore interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
	Delete(ctx context.Context, sessionID string) error
}

// VariantSnapshot is the add-time capture of the purchasable option.
type VariantSnapshot struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductPhoto string
	VariantName  string
	UnitPrice    money.Amount
}

type productLoader interface {
	VariantSnapshot(ctx context.Context, productID uuid.UUID, variantName string) (*VariantSnapshot, error)
}

type ServiceParams struct {
	Store    stateStore
	Products productLoader
	Logger   *logger.Logger
}

type service struct {
	store    stateStore
	products productLoader
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, errors.New("cart service requires a store")
	}
	if params.Products == nil {
		return nil, errors.New("cart service requires a product loader")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		logg:     params.Logger,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (State, error) {
	return s.store.Load(ctx, sessionID)
}

// Add merges into an existing line for the same product and variant, so the
// cart never holds two lines for the same pair.
func (s *service) Add(ctx context.Context, sessionID string, productID uuid.UUID, variantName string, quantity int) (State, error) {
	if quantity <= 0 {
		return State{}, apperrors.New(apperrors.CodeValidation, "quantity must be positive")
	}
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	if idx := state.findLine(productID, variantName); idx >= 0 {
		state.Items[idx].Quantity += quantity
		return state, s.persist(ctx, sessionID, state)
	}
	snap, err := s.products.VariantSnapshot(ctx, productID, variantName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return State{}, apperrors.New(apperrors.CodeNotFound, "product variant not found")
		}
		return State{}, fmt.Errorf("loading variant for cart: %w", err)
	}
	state.Items = append(state.Items, Line{
		ProductID:    snap.ProductID,
		ProductName:  snap.ProductName,
		ProductPhoto: snap.ProductPhoto,
		VariantName:  snap.VariantName,
		UnitPrice:    snap.UnitPrice,
		Quantity:     quantity,
	})
	return state, s.persist(ctx, sessionID, state)
}

// UpdateQuantity sets a line's quantity. A zero or negative quantity removes
// the line instead of leaving a dead entry behind.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, variantName string, quantity int) (State, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, productID, variantName)
	}
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	idx := state.findLine(productID, variantName)
	if idx < 0 {
		return State{}, apperrors.New(apperrors.CodeNotFound, "cart item not found")
	}
	state.Items[idx].Quantity = quantity
	return state, s.persist(ctx, sessionID, state)
}

func (s *service) Remove(ctx context.Context, sessionID string, productID uuid.UUID, variantName string) (State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	idx := state.findLine(productID, variantName)
	if idx < 0 {
		return state, nil
	}
	state.Items = append(state.Items[:idx], state.Items[idx+1:]...)
	return state, s.persist(ctx, sessionID, state)
}

// Clear drops the session's cart key outright, so items and promo state reset
// together and the next read rehydrates an empty cart.
func (s *service) Clear(ctx context.Context, sessionID string) (State, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "clearing cart state", err)
		}
		return State{}, err
	}
	return State{}, nil
}

func (s *service) SetPromo(ctx context.Context, sessionID string, code string, discount money.Amount) (State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	state.PromoCode = code
	state.PromoDiscount = discount
	return state, s.persist(ctx, sessionID, state)
}

func (s *service) RemovePromo(ctx context.Context, sessionID string) (State, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, err
	}
	state.PromoCode = ""
	state.PromoDiscount = money.Zero()
	return state, s.persist(ctx, sessionID, state)
}

func (s *service) persist(ctx context.Context, sessionID string, state State) error {
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persisting cart state", err)
		}
		return err
	}
	return nil
}
