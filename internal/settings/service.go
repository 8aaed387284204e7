package settings

import (
	"context"
	"errors"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	"github.com/fermedirect/storefront-backend/pkg/logger"
)

// Service exposes shop settings to the public API and the admin panel.
type Service interface {
	Current(ctx context.Context) (*models.ShopSettings, error)
	Update(ctx context.Context, settings *models.ShopSettings) (*models.ShopSettings, error)
}

type repository interface {
	Get(ctx context.Context) (*models.ShopSettings, error)
	Upsert(ctx context.Context, settings *models.ShopSettings) (*models.ShopSettings, error)
}

type ServiceParams struct {
	Repo   repository
	Logger *logger.Logger
}

type service struct {
	repo repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, errors.New("settings service requires a repository")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Current(ctx context.Context) (*models.ShopSettings, error) {
	return s.repo.Get(ctx)
}

func (s *service) Update(ctx context.Context, settings *models.ShopSettings) (*models.ShopSettings, error) {
	updated, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(ctx, "shop settings updated")
	}
	return updated, nil
}
