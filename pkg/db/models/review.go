package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review moderated from the admin panel.
type Review struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Author    string     `gorm:"column:author;not null"`
	Rating    int        `gorm:"column:rating;not null"`
	Comment   *string    `gorm:"column:comment"`
	Approved  bool       `gorm:"column:approved;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
