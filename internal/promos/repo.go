package promos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
)

// Repository owns promo code persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every stored code, newest first. The engine filters
// client-side; there is no lookup-by-code query path.
func (r *Repository) List(ctx context.Context) ([]models.PromoCode, error) {
	var codes []models.PromoCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PromoCode, error) {
	var code models.PromoCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *Repository) Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

func (r *Repository) Update(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	if err := r.db.WithContext(ctx).Save(code).Error; err != nil {
		return nil, err
	}
	return code, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PromoCode{}, "id = ?", id).Error
}
