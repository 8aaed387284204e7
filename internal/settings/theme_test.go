package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/types"
)

type stubSettingsService struct {
	mu       sync.Mutex
	settings models.ShopSettings
	err      error
}

func (s *stubSettingsService) Current(context.Context) (*models.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	copied := s.settings
	return &copied, nil
}

func (s *stubSettingsService) Update(_ context.Context, settings *models.ShopSettings) (*models.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = *settings
	return settings, nil
}

func (s *stubSettingsService) set(settings models.ShopSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func newTestController(t *testing.T, svc Service) *Controller {
	t.Helper()
	ctrl, err := NewController(ControllerParams{Settings: svc, Interval: time.Hour})
	if err != nil {
		t.Fatalf("NewController returned error: %v", err)
	}
	return ctrl
}

func TestStartPrimesSnapshot(t *testing.T) {
	svc := &stubSettingsService{settings: models.ShopSettings{
		Theme:          types.Theme{PrimaryColor: "#2d6a4f"},
		AgeGateEnabled: true,
	}}
	ctrl := newTestController(t, svc)
	ctrl.Start(context.Background())
	defer ctrl.Close()

	snap := ctrl.Current()
	if snap.Theme.PrimaryColor != "#2d6a4f" {
		t.Fatalf("expected primed theme, got %+v", snap.Theme)
	}
	if !snap.AgeGateEnabled {
		t.Fatal("expected age gate flag carried into the snapshot")
	}
}

func TestRefreshPublishesOnlyOnChange(t *testing.T) {
	svc := &stubSettingsService{settings: models.ShopSettings{
		Theme: types.Theme{PrimaryColor: "#2d6a4f"},
	}}
	ctrl := newTestController(t, svc)
	ctrl.Start(context.Background())
	defer ctrl.Close()

	ch, unsubscribe := ctrl.Subscribe()
	defer unsubscribe()

	ctrl.Refresh(context.Background())
	select {
	case snap := <-ch:
		t.Fatalf("expected no publish for unchanged settings, got %+v", snap)
	default:
	}

	svc.set(models.ShopSettings{Theme: types.Theme{PrimaryColor: "#9d0208", EventSkin: "noel"}})
	ctrl.Refresh(context.Background())

	select {
	case snap := <-ch:
		if snap.Theme.EventSkin != "noel" {
			t.Fatalf("expected updated snapshot, got %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a published snapshot after a change")
	}
}

func TestRefreshFailureKeepsLastSnapshot(t *testing.T) {
	svc := &stubSettingsService{settings: models.ShopSettings{
		Theme: types.Theme{PrimaryColor: "#2d6a4f"},
	}}
	ctrl := newTestController(t, svc)
	ctrl.Start(context.Background())
	defer ctrl.Close()

	svc.mu.Lock()
	svc.err = errors.New("db down")
	svc.mu.Unlock()

	ctrl.Refresh(context.Background())
	if got := ctrl.Current().Theme.PrimaryColor; got != "#2d6a4f" {
		t.Fatalf("expected stale snapshot kept on failure, got %q", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	svc := &stubSettingsService{}
	ctrl := newTestController(t, svc)
	ctrl.Start(context.Background())
	defer ctrl.Close()

	ch, unsubscribe := ctrl.Subscribe()
	unsubscribe()

	if _, open := <-ch; open {
		t.Fatal("expected channel closed after unsubscribe")
	}

	svc.set(models.ShopSettings{MaintenanceMode: true})
	ctrl.Refresh(context.Background())
}
