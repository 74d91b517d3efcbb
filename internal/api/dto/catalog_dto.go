package dto

import (
	"time"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// CategoryCreateRequest payload for new categories.
type CategoryCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

// CategoryUpdateRequest payload for category patches.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse is the wire shape of a category.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// NewCategoryResponses maps a slice of categories.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = NewCategoryResponse(&categories[i])
	}
	return out
}

// ProductCreateRequest payload for new products.
type ProductCreateRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	CategoryID    int64   `json:"category_id" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity *int    `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Description   *string `json:"description,omitempty"`
}

// ProductUpdateRequest payload for product patches.
type ProductUpdateRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=100"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Description   *string  `json:"description,omitempty"`
}

// ProductResponse is the wire shape of a product.
type ProductResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CategoryID    int64     `json:"category_id"`
	Price         float64   `json:"price"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		CategoryID:    product.CategoryID,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Description:   product.Description,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// NewProductResponses maps a slice of products.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}
