package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/persistence"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

const productCacheTTL = 30 * time.Second

// CatalogService implements category and product management. Product reads
// by id go through a short-lived redis cache; writes invalidate it.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      *persistence.Redis
	logger     *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository, cache *persistence.Redis, logger *zap.Logger) *CatalogService {
	return &CatalogService{categories: categories, products: products, cache: cache, logger: logger}
}

// CategoryInput carries create/update fields for categories.
type CategoryInput struct {
	Name        *string
	Description *string
}

// ProductInput carries create/update fields for products.
type ProductInput struct {
	Name          *string
	CategoryID    *int64
	Price         *float64
	StockQuantity *int
	Description   *string
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	category := &domain.Category{Name: *input.Name, Description: input.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetCategory fetches one category.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory patches a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

// SearchCategories matches the term against name and description. A blank
// term returns the full list.
func (s *CatalogService) SearchCategories(ctx context.Context, term string) ([]domain.Category, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.categories.List(ctx)
	}
	return s.categories.SearchByNameOrDescription(ctx, term)
}

// SearchCategoriesByName matches the term against category names only.
func (s *CatalogService) SearchCategoriesByName(ctx context.Context, name string) ([]domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.categories.List(ctx)
	}
	return s.categories.SearchByName(ctx, name)
}

// SearchCategoriesByDescription matches the term against descriptions only.
func (s *CatalogService) SearchCategoriesByDescription(ctx context.Context, description string) ([]domain.Category, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return s.categories.List(ctx)
	}
	return s.categories.SearchByDescription(ctx, description)
}

// CreateProduct adds a product after checking the category exists.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == nil || input.CategoryID == nil || input.Price == nil {
		return nil, apperrors.NewValidationError("name, category_id and price are required", nil)
	}
	if _, err := s.GetCategory(ctx, *input.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:          *input.Name,
		CategoryID:    *input.CategoryID,
		Price:         *input.Price,
		StockQuantity: input.StockQuantity,
		Description:   input.Description,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns all products.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// GetProduct fetches a product, preferring the cache.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := productCacheKey(id)
	var cached domain.Product
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, persistence.ErrCacheMiss) {
		s.logger.Debug("product cache read failed", zap.Error(err))
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, product, productCacheTTL); err != nil {
		s.logger.Debug("product cache write failed", zap.Error(err))
	}
	return product, nil
}

// UpdateProduct patches a product and invalidates its cache entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StockQuantity != nil {
		product.StockQuantity = input.StockQuantity
	}
	if input.Description != nil {
		product.Description = input.Description
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.logger.Debug("product cache invalidation failed", zap.Error(err))
	}
	return product, nil
}

// DeleteProduct removes a product and invalidates its cache entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return err
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.logger.Debug("product cache invalidation failed", zap.Error(err))
	}
	return nil
}

// SearchProducts filters by name substring and optional category.
func (s *CatalogService) SearchProducts(ctx context.Context, name *string, categoryID *int64) ([]domain.Product, error) {
	return s.products.Search(ctx, repository.ProductFilter{Name: name, CategoryID: categoryID})
}

func productCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
