package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/fermedirect/storefront-backend/pkg/db/models"
	apperrors "github.com/fermedirect/storefront-backend/pkg/errors"
	"github.com/fermedirect/storefront-backend/pkg/money"
)

type stubResolver struct {
	categories map[string]*models.Category
	farms      map[string]*models.Farm
	created    []string
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		categories: map[string]*models.Category{},
		farms:      map[string]*models.Farm{},
	}
}

func (s *stubResolver) FindOrCreateCategoryByName(_ context.Context, name string) (*models.Category, error) {
	if existing, ok := s.categories[name]; ok {
		return existing, nil
	}
	category := &models.Category{ID: uuid.New(), Name: name}
	s.categories[name] = category
	s.created = append(s.created, "category:"+name)
	return category, nil
}

func (s *stubResolver) FindCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for _, category := range s.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
}

func (s *stubResolver) FindOrCreateFarmByName(_ context.Context, name string) (*models.Farm, error) {
	if existing, ok := s.farms[name]; ok {
		return existing, nil
	}
	farm := &models.Farm{ID: uuid.New(), Name: name}
	s.farms[name] = farm
	s.created = append(s.created, "farm:"+name)
	return farm, nil
}

func (s *stubResolver) FindFarmByID(_ context.Context, id uuid.UUID) (*models.Farm, error) {
	for _, farm := range s.farms {
		if farm.ID == id {
			return farm, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "farm not found")
}

func TestNormalizeProductVariantsShape(t *testing.T) {
	input := ProductInput{
		Name: "Tomates anciennes",
		Variants: []VariantInput{
			{Name: "500g", Price: mustAmount(t, `"4.50"`)},
			{Name: "1kg", Price: mustAmount(t, `8`)},
		},
	}

	product, err := normalizeProduct(context.Background(), newStubResolver(), input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(product.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(product.Variants))
	}
	if got := product.Variants[0].Price.Format2(); got != "4.50" {
		t.Fatalf("expected string price normalized to 4.50, got %s", got)
	}
	if !product.IsActive {
		t.Fatal("expected products active by default")
	}
}

func TestNormalizeProductLegacyQuantities(t *testing.T) {
	input := ProductInput{
		Name: "Miel de lavande",
		Quantities: []VariantInput{
			{Weight: "250g", Price: mustAmount(t, `"6.00€"`)},
		},
	}

	product, err := normalizeProduct(context.Background(), newStubResolver(), input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(product.Variants) != 1 || product.Variants[0].Name != "250g" {
		t.Fatalf("expected quantities mapped to variants, got %+v", product.Variants)
	}
}

func TestNormalizeProductVariantsWinOverQuantities(t *testing.T) {
	input := ProductInput{
		Name:       "Oeufs",
		Variants:   []VariantInput{{Name: "x6", Price: mustAmount(t, `3`)}},
		Quantities: []VariantInput{{Weight: "x12", Price: mustAmount(t, `5`)}},
	}

	product, err := normalizeProduct(context.Background(), newStubResolver(), input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(product.Variants) != 1 || product.Variants[0].Name != "x6" {
		t.Fatalf("expected variants shape to win, got %+v", product.Variants)
	}
}

func TestNormalizeProductCategoryByName(t *testing.T) {
	resolver := newStubResolver()
	input := ProductInput{
		Name:     "Tomates anciennes",
		Category: "Légumes",
		Variants: []VariantInput{{Name: "500g", Price: mustAmount(t, `4`)}},
	}

	product, err := normalizeProduct(context.Background(), resolver, input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if product.CategoryID == nil {
		t.Fatal("expected category resolved by name")
	}
	if len(resolver.created) != 1 || resolver.created[0] != "category:Légumes" {
		t.Fatalf("expected category created on first use, got %v", resolver.created)
	}
}

func TestNormalizeProductCategoryByID(t *testing.T) {
	resolver := newStubResolver()
	existing, _ := resolver.FindOrCreateCategoryByName(context.Background(), "Fromages")
	resolver.created = nil

	input := ProductInput{
		Name:     "Chèvre frais",
		Category: existing.ID.String(),
		Variants: []VariantInput{{Name: "250g", Price: mustAmount(t, `6`)}},
	}

	product, err := normalizeProduct(context.Background(), resolver, input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if product.CategoryID == nil || *product.CategoryID != existing.ID {
		t.Fatal("expected existing category matched by id")
	}
	if len(resolver.created) != 0 {
		t.Fatalf("expected no creation for id lookup, got %v", resolver.created)
	}
}

func TestNormalizeProductUnknownCategoryID(t *testing.T) {
	input := ProductInput{
		Name:     "Chèvre frais",
		Category: uuid.NewString(),
		Variants: []VariantInput{{Name: "250g", Price: mustAmount(t, `6`)}},
	}

	_, err := normalizeProduct(context.Background(), newStubResolver(), input)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeValidation {
		t.Fatalf("expected validation error for unknown category id, got %v", err)
	}
}

func TestNormalizeProductRejectsEmptyVariants(t *testing.T) {
	input := ProductInput{Name: "Vide"}
	if _, err := normalizeProduct(context.Background(), newStubResolver(), input); err == nil {
		t.Fatal("expected error for product without variants")
	}
}

func TestNormalizeProductCollapsesDuplicateVariants(t *testing.T) {
	input := ProductInput{
		Name: "Tomates anciennes",
		Variants: []VariantInput{
			{Name: "500g", Price: mustAmount(t, `4`)},
			{Name: "500G", Price: mustAmount(t, `5`)},
		},
	}

	product, err := normalizeProduct(context.Background(), newStubResolver(), input)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(product.Variants) != 1 {
		t.Fatalf("expected duplicate labels collapsed, got %+v", product.Variants)
	}
	if got := product.Variants[0].Price.Format2(); got != "4.00" {
		t.Fatalf("expected first occurrence kept, got %s", got)
	}
}

func mustAmount(t *testing.T, raw string) money.Amount {
	t.Helper()
	var a money.Amount
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("parsing amount %s: %v", raw, err)
	}
	return a
}
