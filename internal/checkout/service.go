package checkout

import (
	"context"
	"errors"

	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/pkg/config"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

// Completion is the terminal result of the wizard: the recap text plus the
// messaging deep links built from it. The raw text doubles as the clipboard
// payload.
type Completion struct {
	Text         string `json:"text"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	TelegramLink string `json:"telegram_link,omitempty"`
}

// Service drives checkout transitions and completion against a session cart.
type Service interface {
	Advance(ctx context.Context, sessionID string, sel Selection) (Selection, error)
	Complete(ctx context.Context, sessionID string, sel Selection) (*Completion, error)
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (cart.State, error)
	Clear(ctx context.Context, sessionID string) (cart.State, error)
}

type settingsReader interface {
	Current(ctx context.Context) (*models.ShopSettings, error)
}

type ServiceParams struct {
	Carts    cartReader
	Settings settingsReader
	Config   config.CheckoutConfig
	Logger   *logger.Logger
}

type service struct {
	carts    cartReader
	settings settingsReader
	cfg      config.CheckoutConfig
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, errors.New("checkout service requires a cart reader")
	}
	if params.Settings == nil {
		return nil, errors.New("checkout service requires a settings reader")
	}
	return &service{
		carts:    params.Carts,
		settings: params.Settings,
		cfg:      params.Config,
		logg:     params.Logger,
	}, nil
}

func (s *service) Advance(ctx context.Context, sessionID string, sel Selection) (Selection, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return sel, err
	}
	return sel.Advance(state.IsEmpty())
}

// Complete revalidates the whole wizard, renders the recap, builds the share
// links, and clears the cart. Clearing is the last step, so a render failure
// never leaves the shopper with an emptied cart and no order text.
func (s *service) Complete(ctx context.Context, sessionID string, sel Selection) (*Completion, error) {
	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, apperrors.New(apperrors.CodeStateConflict, "cart is empty")
	}
	if err := s.validateFull(sel); err != nil {
		return nil, err
	}

	fee, whatsapp, telegram := s.handoffConfig(ctx, sel.Service)
	text := RenderSummary(state, sel, fee)
	completion := &Completion{
		Text:         text,
		WhatsAppLink: WhatsAppLink(whatsapp, text),
		TelegramLink: TelegramLink(telegram, text),
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return completion, nil
}

// validateFull replays every guard so a completion request cannot skip steps.
func (s *service) validateFull(sel Selection) error {
	probe := Selection{Step: StepService, Service: sel.Service}
	if _, err := probe.Advance(false); err != nil {
		return err
	}
	probe = sel
	probe.Step = StepCustomerInfo
	if _, err := probe.Advance(false); err != nil {
		return err
	}
	return nil
}

// handoffConfig reads fees and contact points from shop settings, falling
// back to env config for contacts. Settings being unreachable degrades to a
// zero fee rather than blocking completion.
func (s *service) handoffConfig(ctx context.Context, serviceName string) (money.Amount, string, string) {
	fee := money.Zero()
	whatsapp := s.cfg.WhatsAppNumber
	telegram := s.cfg.TelegramHandle

	settings, err := s.settings.Current(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "shop settings unavailable at checkout, using defaults")
		}
		return fee, whatsapp, telegram
	}
	if amount, ok := settings.ServiceFees[serviceName]; ok {
		fee = amount
	}
	if settings.WhatsAppNumber != nil && *settings.WhatsAppNumber != "" {
		whatsapp = *settings.WhatsAppNumber
	}
	if settings.TelegramHandle != nil && *settings.TelegramHandle != "" {
		telegram = *settings.TelegramHandle
	}
	return fee, whatsapp, telegram
}
