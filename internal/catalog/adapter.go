package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

// VariantInput accepts both the current variant shape and the legacy
// "quantities" shape, where the option label lived in a weight field.
type VariantInput struct {
	Name     string       `json:"name"`
	Weight   string       `json:"weight"`
	Price    money.Amount `json:"price"`
	Position int          `json:"position"`
}

func (v VariantInput) label() string {
	if name := strings.TrimSpace(v.Name); name != "" {
		return name
	}
	return strings.TrimSpace(v.Weight)
}

// ProductInput is the admin write payload. Legacy clients still send
// "quantities" instead of "variants" and reference category/farm by name
// instead of id; both shapes normalize to the same canonical product here,
// never at read time.
type ProductInput struct {
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Photo       string         `json:"photo"`
	Photos      []string       `json:"photos"`
	Category    string         `json:"category"`
	Farm        string         `json:"farm"`
	Variants    []VariantInput `json:"variants"`
	Quantities  []VariantInput `json:"quantities"`
	IsActive    *bool          `json:"is_active"`
	Position    int            `json:"position"`
}

type referenceResolver interface {
	FindOrCreateCategoryByName(ctx context.Context, name string) (*models.Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindOrCreateFarmByName(ctx context.Context, name string) (*models.Farm, error)
	FindFarmByID(ctx context.Context, id uuid.UUID) (*models.Farm, error)
}

// normalizeProduct converts an arbitrary legacy payload into a canonical
// product row. Variants win over quantities when both are present; duplicate
// option labels collapse to the first occurrence.
func normalizeProduct(ctx context.Context, resolver referenceResolver, input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "product name is required")
	}

	variants, err := normalizeVariants(input)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     name,
		Photos:   pq.StringArray(input.Photos),
		IsActive: input.IsActive == nil || *input.IsActive,
		Position: input.Position,
		Variants: variants,
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		product.Description = &desc
	}
	if photo := strings.TrimSpace(input.Photo); photo != "" {
		product.Photo = &photo
	}

	if err := resolveCategory(ctx, resolver, input.Category, product); err != nil {
		return nil, err
	}
	if err := resolveFarm(ctx, resolver, input.Farm, product); err != nil {
		return nil, err
	}
	return product, nil
}

func normalizeVariants(input ProductInput) ([]models.ProductVariant, error) {
	source := input.Variants
	if len(source) == 0 {
		source = input.Quantities
	}
	if len(source) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "at least one variant is required")
	}

	seen := map[string]bool{}
	variants := make([]models.ProductVariant, 0, len(source))
	for i, raw := range source {
		label := raw.label()
		if label == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "variant name is required")
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		position := raw.Position
		if position == 0 {
			position = i
		}
		variants = append(variants, models.ProductVariant{
			Name:     label,
			Price:    raw.Price,
			Position: position,
		})
	}
	return variants, nil
}

// resolveCategory accepts a uuid (current shape) or a bare name (legacy
// shape, created on first use). Empty input leaves the product uncategorized.
func resolveCategory(ctx context.Context, resolver referenceResolver, ref string, product *models.Product) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		category, err := resolver.FindCategoryByID(ctx, id)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeValidation, err, "unknown category")
		}
		product.CategoryID = &category.ID
		return nil
	}
	category, err := resolver.FindOrCreateCategoryByName(ctx, ref)
	if err != nil {
		return err
	}
	product.CategoryID = &category.ID
	return nil
}

func resolveFarm(ctx context.Context, resolver referenceResolver, ref string, product *models.Product) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		farm, err := resolver.FindFarmByID(ctx, id)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeValidation, err, "unknown farm")
		}
		product.FarmID = &farm.ID
		return nil
	}
	farm, err := resolver.FindOrCreateFarmByName(ctx, ref)
	if err != nil {
		return err
	}
	product.FarmID = &farm.ID
	return nil
}
