package socials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, enabledOnly bool) ([]models.SocialLink, error) {
	query := r.db.WithContext(ctx).Order("position ASC, network ASC")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	var links []models.SocialLink
	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *Repository) Create(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) Update(ctx context.Context, link *models.SocialLink) (*models.SocialLink, error) {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SocialLink{}, "id = ?", id).Error
}
