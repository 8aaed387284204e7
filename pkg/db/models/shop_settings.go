package models

import (
	"time"

	"github.com/fermedirect/storefront-backend/pkg/money"
	"github.com/fermedirect/storefront-backend/pkg/types"
)

// SettingsRowID pins the settings table to a single row.
const SettingsRowID = 1

// ShopSettings is the singleton configuration blob the storefront polls:
// theming, maintenance mode, loading screen, age gate, and per-service fees.
type ShopSettings struct {
	ID                 int                     `gorm:"column:id;primaryKey"`
	ShopName           string                  `gorm:"column:shop_name;not null;default:''"`
	MaintenanceMode    bool                    `gorm:"column:maintenance_mode;not null;default:false"`
	MaintenanceMessage *string                 `gorm:"column:maintenance_message"`
	AgeGateEnabled     bool                    `gorm:"column:age_gate_enabled;not null;default:false"`
	Theme              types.Theme             `gorm:"column:theme;type:jsonb;serializer:json"`
	LoadingScreen      types.LoadingScreen     `gorm:"column:loading_screen;type:jsonb;serializer:json"`
	ServiceFees        map[string]money.Amount `gorm:"column:service_fees;type:jsonb;serializer:json"`
	WhatsAppNumber     *string                 `gorm:"column:whatsapp_number"`
	TelegramHandle     *string                 `gorm:"column:telegram_handle"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy singular table name the admin panel queries.
func (ShopSettings) TableName() string {
	return "shop_settings"
}
