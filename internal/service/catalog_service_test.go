package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
)

func newTestCatalog() (*CatalogService, *memCategoryRepo, *memProductRepo) {
	categories := newMemCategoryRepo()
	products := newMemProductRepo()
	// No cache behind the service; reads fall through to the repository.
	return NewCatalogService(categories, products, nil, zap.NewNop()), categories, products
}

func TestCreateCategoryRequiresName(t *testing.T) {
	s, _, _ := newTestCatalog()

	_, err := s.CreateCategory(context.Background(), CategoryInput{})
	assertDomainError(t, err, "VALIDATION_FAILED", 400)

	_, err = s.CreateCategory(context.Background(), CategoryInput{Name: ptr("   ")})
	assertDomainError(t, err, "VALIDATION_FAILED", 400)
}

func TestCategoryCRUD(t *testing.T) {
	s, _, _ := newTestCatalog()
	ctx := context.Background()

	created, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Books"), Description: ptr("Printed matter")})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created category has no id")
	}

	updated, err := s.UpdateCategory(ctx, created.ID, CategoryInput{Description: ptr("Printed and electronic")})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if updated.Name != "Books" {
		t.Errorf("name changed to %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "Printed and electronic" {
		t.Errorf("description not updated: %v", updated.Description)
	}

	if err := s.DeleteCategory(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	_, err = s.GetCategory(ctx, created.ID)
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestSearchCategoriesBlankTermReturnsAll(t *testing.T) {
	s, _, _ := newTestCatalog()
	ctx := context.Background()

	if _, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Books")}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Games")}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	all, err := s.SearchCategories(ctx, "   ")
	if err != nil {
		t.Fatalf("SearchCategories: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("blank term returned %d categories, want 2", len(all))
	}

	matched, err := s.SearchCategories(ctx, "book")
	if err != nil {
		t.Fatalf("SearchCategories: %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "Books" {
		t.Errorf("term match returned %v", matched)
	}
}

func TestCreateProductRequiresExistingCategory(t *testing.T) {
	s, _, _ := newTestCatalog()

	_, err := s.CreateProduct(context.Background(), ProductInput{
		Name:       ptr("Go in Action"),
		CategoryID: ptr(int64(404)),
		Price:      ptr(39.90),
	})
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestProductUpdatePatchSemantics(t *testing.T) {
	s, _, products := newTestCatalog()
	ctx := context.Background()

	category, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Books")})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	created, err := s.CreateProduct(ctx, ProductInput{
		Name:          ptr("Go in Action"),
		CategoryID:    ptr(category.ID),
		Price:         ptr(39.90),
		StockQuantity: ptr(10),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	updated, err := s.UpdateProduct(ctx, created.ID, ProductInput{Price: ptr(29.90)})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 29.90 {
		t.Errorf("price = %v, want 29.90", updated.Price)
	}
	if updated.Name != "Go in Action" {
		t.Errorf("name changed to %q", updated.Name)
	}
	if updated.StockQuantity == nil || *updated.StockQuantity != 10 {
		t.Errorf("stock changed: %v", updated.StockQuantity)
	}

	stored, err := products.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Price != 29.90 {
		t.Errorf("stored price = %v, want 29.90", stored.Price)
	}
}

func TestProductUpdateRejectsUnknownCategory(t *testing.T) {
	s, _, _ := newTestCatalog()
	ctx := context.Background()

	category, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Books")})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	created, err := s.CreateProduct(ctx, ProductInput{
		Name:       ptr("Go in Action"),
		CategoryID: ptr(category.ID),
		Price:      ptr(39.90),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	_, err = s.UpdateProduct(ctx, created.ID, ProductInput{CategoryID: ptr(int64(404))})
	assertDomainError(t, err, "NOT_FOUND", 404)
}

func TestSearchProductsFilters(t *testing.T) {
	s, _, _ := newTestCatalog()
	ctx := context.Background()

	books, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Books")})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	games, err := s.CreateCategory(ctx, CategoryInput{Name: ptr("Games")})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	mustCreateProduct(t, s, "Go in Action", books.ID)
	mustCreateProduct(t, s, "Go Board", games.ID)
	mustCreateProduct(t, s, "Chess Board", games.ID)

	found, err := s.SearchProducts(ctx, ptr("go"), &games.ID)
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Go Board" {
		t.Errorf("search returned %v", found)
	}
}

func mustCreateProduct(t *testing.T, s *CatalogService, name string, categoryID int64) *domain.Product {
	t.Helper()

	product, err := s.CreateProduct(context.Background(), ProductInput{
		Name:       ptr(name),
		CategoryID: ptr(categoryID),
		Price:      ptr(9.99),
	})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", name, err)
	}
	return product
}
