package models

import (
	"time"

	"github.com/google/uuid"
)

// Farm is a producer shown on product pages.
type Farm struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Location    *string   `gorm:"column:location"`
	Description *string   `gorm:"column:description"`
	Photo       *string   `gorm:"column:photo"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
