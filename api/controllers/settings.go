package controllers

import (
	"net/http"

	"github.com/fermedirect/storefront-backend/api/responses"
	"github.com/fermedirect/storefront-backend/api/validators"
	"github.com/fermedirect/storefront-backend/internal/settings"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
	"github.com/fermedirect/storefront-backend/pkg/money"
	"github.com/fermedirect/storefront-backend/pkg/types"
)

// ThemeSnapshot serves the cached theme state. This is the endpoint the SPA
// polls; it never touches the database on the request path.
func ThemeSnapshot(controller *settings.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if controller == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("theme"))
			return
		}
		responses.WriteSuccess(w, controller.Current())
	}
}

func AdminSettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Current(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

type settingsRequest struct {
	ShopName           string                  `json:"shop_name"`
	MaintenanceMode    bool                    `json:"maintenance_mode"`
	MaintenanceMessage *string                 `json:"maintenance_message,omitempty"`
	AgeGateEnabled     bool                    `json:"age_gate_enabled"`
	Theme              types.Theme             `json:"theme"`
	LoadingScreen      types.LoadingScreen     `json:"loading_screen"`
	ServiceFees        map[string]money.Amount `json:"service_fees,omitempty"`
	WhatsAppNumber     *string                 `json:"whatsapp_number,omitempty"`
	TelegramHandle     *string                 `json:"telegram_handle,omitempty"`
}

// AdminSettingsUpdate writes the settings blob and pushes the new theme to
// subscribers immediately instead of waiting for the next refresh tick.
func AdminSettingsUpdate(svc settings.Service, controller *settings.Controller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body settingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), &models.ShopSettings{
			ShopName:           body.ShopName,
			MaintenanceMode:    body.MaintenanceMode,
			MaintenanceMessage: body.MaintenanceMessage,
			AgeGateEnabled:     body.AgeGateEnabled,
			Theme:              body.Theme,
			LoadingScreen:      body.LoadingScreen,
			ServiceFees:        body.ServiceFees,
			WhatsAppNumber:     body.WhatsAppNumber,
			TelegramHandle:     body.TelegramHandle,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if controller != nil {
			controller.Refresh(r.Context())
		}
		responses.WriteSuccess(w, updated)
	}
}

// PublicSettings exposes the storefront-safe subset of settings.
func PublicSettings(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Current(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"shop_name":           current.ShopName,
			"maintenance_mode":    current.MaintenanceMode,
			"maintenance_message": current.MaintenanceMessage,
			"age_gate_enabled":    current.AgeGateEnabled,
			"theme":               current.Theme,
			"loading_screen":      current.LoadingScreen,
			"service_fees":        current.ServiceFees,
		})
	}
}
