package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/money"
)

// PromoCode carries the three legacy discount shapes the storefront has
// accumulated. Exactly one of them is honored per code, resolved in a fixed
// priority order by the promo engine:
//
//	Type == "percent"          -> Value is a percentage of the subtotal
//	Type == "fixed" or Value   -> Value is a flat amount
//	Discount set               -> legacy flat amount
//
// Enabled is a pointer on purpose: only an explicit false disables a code.
type PromoCode struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string        `gorm:"column:code;not null;uniqueIndex"`
	Enabled   *bool         `gorm:"column:enabled"`
	MinAmount money.Amount  `gorm:"column:min_amount;type:numeric(10,2);not null;default:0"`
	Type      *string       `gorm:"column:type"`
	Value     *money.Amount `gorm:"column:value;type:numeric(10,2)"`
	Discount  *money.Amount `gorm:"column:discount;type:numeric(10,2)"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// IsEnabled mirrors the storefront's historical "enabled !== false" check.
func (p PromoCode) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}
