package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// fallbackSlugBase is used when a product name slugifies to nothing
const fallbackSlugBase = "product"

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product. The slug is derived from the name plus
// a random suffix and regenerated until it is unique.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
		}
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SKU_EXISTS", "Product with this SKU already exists")
	}

	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.CategoryID, req.Name, slug, req.SKU, req.Price)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.ThumbnailImage = req.ThumbnailImage
	if req.Images != nil {
		product.Images = req.Images
	}
	product.PriceOrigin = req.PriceOrigin

	if req.Badge != "" {
		badge := catalog.ProductBadge(req.Badge)
		if !badge.IsValid() {
			return nil, shared.NewDomainError("INVALID_BADGE", "Invalid product badge")
		}
		product.Badge = &badge
	}
	if req.Status != "" {
		if err := product.SetStatus(catalog.ProductStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("sku", product.SKU),
		zap.String("slug", product.Slug))
	return ToProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySlug retrieves a product by its slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List retrieves products with filtering and pagination, newest first
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update applies a partial update to a product. A rename regenerates
// the slug only when the new name slugifies to a different base, so
// cosmetic renames keep existing links alive.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found")
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		exists, err := s.productRepo.ExistsBySKU(ctx, *req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("SKU_EXISTS", "Product with this SKU already exists")
		}
		product.SKU = *req.SKU
	}

	if req.Name != nil && *req.Name != "" {
		newBase := catalog.Slugify(*req.Name)
		if newBase == "" {
			newBase = fallbackSlugBase
		}
		if newBase != catalog.SlugBase(product.Slug) {
			slug, err := s.uniqueSlug(ctx, *req.Name)
			if err != nil {
				return nil, err
			}
			product.Slug = slug
		}
		product.Name = *req.Name
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ThumbnailImage != nil {
		product.ThumbnailImage = *req.ThumbnailImage
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.PriceOrigin != nil {
		product.PriceOrigin = req.PriceOrigin
	}
	if req.Badge != nil {
		if *req.Badge == "" {
			product.Badge = nil
		} else {
			badge := catalog.ProductBadge(*req.Badge)
			if !badge.IsValid() {
				return nil, shared.NewDomainError("INVALID_BADGE", "Invalid product badge")
			}
			product.Badge = &badge
		}
	}
	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	product.Touch()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete removes a product. Historical order lines keep their snapshot;
// their product reference is cleared by the schema.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("sku", product.SKU))
	return nil
}

// uniqueSlug generates slug candidates from the name until one is free
func (s *ProductService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := catalog.Slugify(name)
	if base == "" {
		base = fallbackSlugBase
	}
	for {
		candidate := catalog.NewSlug(base)
		_, err := s.productRepo.FindBySlug(ctx, candidate)
		if errors.Is(err, shared.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
	}
}
