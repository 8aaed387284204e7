package promos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/db"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
)

// Service is the admin CRUD surface over promo codes. Shopper-facing
// application goes through the Engine instead.
type Service interface {
	List(ctx context.Context) ([]models.PromoCode, error)
	Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error)
	Update(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context) ([]models.PromoCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PromoCode, error)
	Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error)
	Update(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("promos service requires a repository")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.PromoCode, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	if err := validateShape(code); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, code)
	if err != nil && db.IsUniqueViolation(err, "") {
		return nil, apperrors.Wrap(apperrors.CodeConflict, err, "code already exists")
	}
	return created, err
}

func (s *service) Update(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	if err := validateShape(code); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, code.ID); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, code)
	if err != nil && db.IsUniqueViolation(err, "") {
		return nil, apperrors.Wrap(apperrors.CodeConflict, err, "code already exists")
	}
	return updated, err
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// validateShape rejects codes the engine could never resolve, so malformed
// records cannot be created going forward. Legacy rows are still tolerated at
// application time.
func validateShape(code *models.PromoCode) error {
	code.Code = strings.TrimSpace(code.Code)
	if code.Code == "" {
		return apperrors.New(apperrors.CodeValidation, "code is required")
	}
	if _, ok := resolveDiscount(*code, code.MinAmount); !ok {
		return apperrors.New(apperrors.CodeValidation, "a percent, fixed, or discount value is required")
	}
	return nil
}
