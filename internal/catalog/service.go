package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/internal/cart"
	"github.com/fermedirect/storefront-backend/pkg/db"
	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/logger"
)

// Service is the catalog surface shared by the public API, the admin panel,
// and the cart (which snapshots variants at add time).
type Service interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListFarms(ctx context.Context) ([]models.Farm, error)
	CreateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error)
	UpdateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error)
	DeleteFarm(ctx context.Context, id uuid.UUID) error

	VariantSnapshot(ctx context.Context, productID uuid.UUID, variantName string) (*cart.VariantSnapshot, error)
}

type repository interface {
	referenceResolver
	ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindVariant(ctx context.Context, productID uuid.UUID, variantName string) (*models.Product, *models.ProductVariant, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListFarms(ctx context.Context) ([]models.Farm, error)
	CreateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error)
	UpdateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error)
	DeleteFarm(ctx context.Context, id uuid.UUID) error
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
		return nil, errors.New("catalog service requires a repository")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, activeOnly)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product, err := normalizeProduct(ctx, s.repo, input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, apperrors.Wrap(apperrors.CodeConflict, err, "product already exists")
		}
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "product_id", created.ID.String()), "product created")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		return nil, err
	}
	product, err := normalizeProduct(ctx, s.repo, input)
	if err != nil {
		return nil, err
	}
	product.ID = id
	for i := range product.Variants {
		product.Variants[i].ProductID = id
	}
	return s.repo.UpdateProduct(ctx, product)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil && db.IsUniqueViolation(err, "") {
		return nil, apperrors.Wrap(apperrors.CodeConflict, err, "category already exists")
	}
	return created, err
}

func (s *service) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	return s.repo.UpdateCategory(ctx, category)
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *service) ListFarms(ctx context.Context) ([]models.Farm, error) {
	return s.repo.ListFarms(ctx)
}

func (s *service) CreateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error) {
	created, err := s.repo.CreateFarm(ctx, farm)
	if err != nil && db.IsUniqueViolation(err, "") {
		return nil, apperrors.Wrap(apperrors.CodeConflict, err, "farm already exists")
	}
	return created, err
}

func (s *service) UpdateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error) {
	return s.repo.UpdateFarm(ctx, farm)
}

func (s *service) DeleteFarm(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFarm(ctx, id)
}

// VariantSnapshot captures the variant's product data for the cart. Inactive
// products are not purchasable.
func (s *service) VariantSnapshot(ctx context.Context, productID uuid.UUID, variantName string) (*cart.VariantSnapshot, error) {
	product, variant, err := s.repo.FindVariant(ctx, productID, variantName)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, apperrors.New(apperrors.CodeStateConflict, "product is not available")
	}
	snap := &cart.VariantSnapshot{
		ProductID:   product.ID,
		ProductName: product.Name,
		VariantName: variant.Name,
		UnitPrice:   variant.Price,
	}
	if product.Photo != nil {
		snap.ProductPhoto = *product.Photo
	}
	return snap, nil
}
