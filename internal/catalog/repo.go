package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
)

// Repository owns products, categories, and farms. They share one repository
// because product ingestion resolves category and farm references inline.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns products in display order with variants preloaded.
// When activeOnly is set, hidden products are excluded (the public catalog);
// the admin panel lists everything.
func (r *Repository) ListProducts(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, name ASC")
		}).
		Preload("Category").
		Preload("Farm").
		Order("position ASC, created_at DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, name ASC")
		}).
		Preload("Category").
		Preload("Farm").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindVariant locates a purchasable option by product and variant name.
func (r *Repository) FindVariant(ctx context.Context, productID uuid.UUID, variantName string) (*models.Product, *models.ProductVariant, error) {
	product, err := r.FindProductByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	for i := range product.Variants {
		if product.Variants[i].Name == variantName {
			return product, &product.Variants[i], nil
		}
	}
	return nil, nil, gorm.ErrRecordNotFound
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the row and its variants wholesale. Variants are
// rewritten rather than diffed; the storefront always submits the full set.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindOrCreateCategoryByName backs the legacy ingestion path where a product
// arrives with a category name instead of an id.
func (r *Repository) FindOrCreateCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		FirstOrCreate(&category, models.Category{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *Repository) ListFarms(ctx context.Context) ([]models.Farm, error) {
	var farms []models.Farm
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

func (r *Repository) FindFarmByID(ctx context.Context, id uuid.UUID) (*models.Farm, error) {
	var farm models.Farm
	if err := r.db.WithContext(ctx).First(&farm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *Repository) FindOrCreateFarmByName(ctx context.Context, name string) (*models.Farm, error) {
	var farm models.Farm
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		FirstOrCreate(&farm, models.Farm{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &farm, nil
}

func (r *Repository) CreateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error) {
	if err := r.db.WithContext(ctx).Create(farm).Error; err != nil {
		return nil, err
	}
	return farm, nil
}

func (r *Repository) UpdateFarm(ctx context.Context, farm *models.Farm) (*models.Farm, error) {
	if err := r.db.WithContext(ctx).Save(farm).Error; err != nil {
		return nil, err
	}
	return farm, nil
}

func (r *Repository) DeleteFarm(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Farm{}, "id = ?", id).Error
}
