package models

import (
	"time"

	"github.com/google/uuid"
)

// SocialLink is a contact/social entry shown in the storefront footer.
type SocialLink struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Network   string    `gorm:"column:network;not null;uniqueIndex"`
	URL       string    `gorm:"column:url;not null"`
	Enabled   bool      `gorm:"column:enabled;not null;default:true"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
