package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fermedirect/storefront-backend/pkg/money"
)

// Product is the canonical catalog listing. Legacy admin payloads arrive in
// several shapes (variants vs quantities, category as id or name); by the time
// a row exists here it has been through the ingestion adapter and carries the
// single canonical form.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	Photo       *string          `gorm:"column:photo"`
	Photos      pq.StringArray   `gorm:"column:photos;type:text[]"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	FarmID      *uuid.UUID       `gorm:"column:farm_id;type:uuid"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	Position    int              `gorm:"column:position;not null;default:0"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	Farm        *Farm            `gorm:"foreignKey:FarmID"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant is a purchasable option of a product (weight, size).
type ProductVariant struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID    `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_variant_product_name"`
	Name      string       `gorm:"column:name;not null;uniqueIndex:ux_variant_product_name"`
	Price     money.Amount `gorm:"column:price;type:numeric(10,2);not null"`
	Position  int          `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
