package checkout

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/pkg/config"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

type stubCartReader struct {
	state   cart.State
	cleared bool
}

func (s *stubCartReader) Get(context.Context, string) (cart.State, error) {
	return s.state, nil
}

func (s *stubCartReader) Clear(context.Context, string) (cart.State, error) {
	s.cleared = true
	s.state = cart.State{}
	return s.state, nil
}

type stubSettingsReader struct {
	settings *models.ShopSettings
	err      error
}

func (s *stubSettingsReader) Current(context.Context) (*models.ShopSettings, error) {
	return s.settings, s.err
}

func orderedCart() cart.State {
	return cart.State{
		Items: []cart.Line{{
			ProductID:   uuid.New(),
			ProductName: "Fromage de chèvre",
			VariantName: "250g",
			UnitPrice:   money.MustParse("6.50"),
			Quantity:    2,
		}},
		PromoCode:     "SAVE10",
		PromoDiscount: money.MustParse("1.30"),
	}
}

func completedSelection() Selection {
	return Selection{
		Step:     StepSummary,
		Service:  "Livraison",
		Slot:     "14h-16h",
		Payment:  "Espèces",
		Customer: validCustomer(),
	}
}

func newCheckoutService(t *testing.T, carts *stubCartReader, settings *stubSettingsReader) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Carts:    carts,
		Settings: settings,
		Config:   config.CheckoutConfig{WhatsAppNumber: "+33 6 12 34 56 78", TelegramHandle: "@fermedirect"},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestCompleteRendersSummaryAndClearsCart(t *testing.T) {
	whatsapp := "+33611112222"
	fees := map[string]money.Amount{"Livraison": money.MustParse("2.50")}
	carts := &stubCartReader{state: orderedCart()}
	settings := &stubSettingsReader{settings: &models.ShopSettings{
		ServiceFees:    fees,
		WhatsAppNumber: &whatsapp,
	}}
	svc := newCheckoutService(t, carts, settings)

	completion, err := svc.Complete(context.Background(), "s1", completedSelection())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	for _, want := range []string{
		"Fromage de chèvre (250g) x2 : 13.00€",
		"Sous-total : 13.00€",
		"Code promo SAVE10 : -1.30€",
		"Frais de service : 2.50€",
		"Total : 14.20€",
		"Service : Livraison (14h-16h)",
		"Paiement : Espèces",
		"Adresse : 12 rue des Lilas",
	} {
		if !strings.Contains(completion.Text, want) {
			t.Fatalf("summary missing %q:\n%s", want, completion.Text)
		}
	}

	if !strings.HasPrefix(completion.WhatsAppLink, "https://wa.me/33611112222?text=") {
		t.Fatalf("unexpected whatsapp link %q", completion.WhatsAppLink)
	}
	if !strings.HasPrefix(completion.TelegramLink, "https://t.me/fermedirect?text=") {
		t.Fatalf("unexpected telegram link %q", completion.TelegramLink)
	}
	encoded := completion.WhatsAppLink[strings.Index(completion.WhatsAppLink, "text=")+len("text="):]
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("decoding link text: %v", err)
	}
	if decoded != completion.Text {
		t.Fatal("expected link text to round-trip to the rendered summary")
	}

	if !carts.cleared {
		t.Fatal("expected cart cleared after completion")
	}
}

func TestCompleteEmptyCart(t *testing.T) {
	svc := newCheckoutService(t, &stubCartReader{}, &stubSettingsReader{settings: &models.ShopSettings{}})

	_, err := svc.Complete(context.Background(), "s1", completedSelection())
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeStateConflict {
		t.Fatalf("expected state conflict for empty cart, got %v", err)
	}
}

func TestCompleteRevalidatesGuards(t *testing.T) {
	carts := &stubCartReader{state: orderedCart()}
	svc := newCheckoutService(t, carts, &stubSettingsReader{settings: &models.ShopSettings{}})

	sel := completedSelection()
	sel.Customer.Address = ""
	if _, err := svc.Complete(context.Background(), "s1", sel); err == nil {
		t.Fatal("expected missing address to block completion")
	}
	if carts.cleared {
		t.Fatal("expected cart untouched after failed completion")
	}
}

func TestCompleteSettingsOutageDegradesToZeroFee(t *testing.T) {
	carts := &stubCartReader{state: orderedCart()}
	svc := newCheckoutService(t, carts, &stubSettingsReader{err: errors.New("db down")})

	completion, err := svc.Complete(context.Background(), "s1", completedSelection())
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if strings.Contains(completion.Text, "Frais de service") {
		t.Fatalf("expected no fee line without settings:\n%s", completion.Text)
	}
	if !strings.Contains(completion.Text, "Total : 11.70€") {
		t.Fatalf("expected fee-free total 11.70:\n%s", completion.Text)
	}
	if !strings.HasPrefix(completion.WhatsAppLink, "https://wa.me/33612345678?text=") {
		t.Fatalf("expected env fallback contact, got %q", completion.WhatsAppLink)
	}
}
