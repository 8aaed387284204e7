package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
)

// Repository owns the single shop_settings row.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the settings row, creating the default one if migrations have
// not seeded it yet.
func (r *Repository) Get(ctx context.Context) (*models.ShopSettings, error) {
	var settings models.ShopSettings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", models.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.ShopSettings{ID: models.SettingsRowID}
		if createErr := r.db.WithContext(ctx).Create(&settings).Error; createErr != nil {
			return nil, createErr
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the full settings blob, pinned to the singleton row id.
func (r *Repository) Upsert(ctx context.Context, settings *models.ShopSettings) (*models.ShopSettings, error) {
	settings.ID = models.SettingsRowID
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}
