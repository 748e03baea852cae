package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the input for a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// CategoryListFilter contains filter options for category queries
type CategoryListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a category to its response form
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateProductRequest is the input for creating a product. The slug is
// generated server-side from the name.
type CreateProductRequest struct {
	CategoryID     uuid.UUID        `json:"category_id" binding:"required"`
	Name           string           `json:"name" binding:"required"`
	SKU            string           `json:"sku" binding:"required"`
	Description    string           `json:"description"`
	ThumbnailImage string           `json:"thumbnail_image"`
	Images         []string         `json:"images"`
	Price          decimal.Decimal  `json:"price"`
	PriceOrigin    *decimal.Decimal `json:"price_origin"`
	Badge          string           `json:"badge"`
	Status         string           `json:"status"`
}

// UpdateProductRequest is the input for a partial product update. Nil
// fields are left untouched. Renaming regenerates the slug when the
// new name slugifies to a different base.
type UpdateProductRequest struct {
	CategoryID     *uuid.UUID       `json:"category_id"`
	Name           *string          `json:"name"`
	SKU            *string          `json:"sku"`
	Description    *string          `json:"description"`
	ThumbnailImage *string          `json:"thumbnail_image"`
	Images         *[]string        `json:"images"`
	Price          *decimal.Decimal `json:"price"`
	PriceOrigin    *decimal.Decimal `json:"price_origin"`
	Badge          *string          `json:"badge"`
	Status         *string          `json:"status"`
}

// ProductListFilter contains filter options for product queries
type ProductListFilter struct {
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft published archived"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	CategoryID     uuid.UUID        `json:"category_id"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	SKU            string           `json:"sku"`
	Description    string           `json:"description,omitempty"`
	ThumbnailImage string           `json:"thumbnail_image,omitempty"`
	Images         []string         `json:"images"`
	Price          decimal.Decimal  `json:"price"`
	PriceOrigin    *decimal.Decimal `json:"price_origin,omitempty"`
	Badge          *string          `json:"badge,omitempty"`
	Stock          int              `json:"stock"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) *ProductResponse {
	var badge *string
	if p.Badge != nil {
		b := string(*p.Badge)
		badge = &b
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return &ProductResponse{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Slug:           p.Slug,
		SKU:            p.SKU,
		Description:    p.Description,
		ThumbnailImage: p.ThumbnailImage,
		Images:         images,
		Price:          p.Price,
		PriceOrigin:    p.PriceOrigin,
		Badge:          badge,
		Stock:          p.Stock,
		Status:         p.Status.String(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return responses
}
