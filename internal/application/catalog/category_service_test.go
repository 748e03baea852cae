package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

func newCategoryService(db *gorm.DB) *catalogapp.CategoryService {
	return catalogapp.NewCategoryService(persistence.NewGormCategoryRepository(db), zap.NewNop())
}

func TestCategoryService_Create(t *testing.T) {
	db := setupCatalogTestDB(t)
	service := newCategoryService(db)
	ctx := context.Background()

	t.Run("creates a category", func(t *testing.T) {
		response, err := service.Create(ctx, catalogapp.CreateCategoryRequest{
			Name:        "Audio",
			Slug:        "audio",
			Description: "Speakers and headphones",
		})
		require.NoError(t, err)

		assert.Equal(t, "Audio", response.Name)
		assert.Equal(t, "audio", response.Slug)
		assert.Equal(t, "Speakers and headphones", response.Description)
	})

	t.Run("rejects a duplicate slug", func(t *testing.T) {
		_, err := service.Create(ctx, catalogapp.CreateCategoryRequest{
			Name: "More Audio",
			Slug: "audio",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_EXISTS", domainErr.Code)
	})
}

func TestCategoryService_Update(t *testing.T) {
	db := setupCatalogTestDB(t)
	service := newCategoryService(db)
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	create := func(t *testing.T, name, slug string) *catalogapp.CategoryResponse {
		t.Helper()
		response, err := service.Create(ctx, catalogapp.CreateCategoryRequest{Name: name, Slug: slug})
		require.NoError(t, err)
		return response
	}

	t.Run("applies partial changes", func(t *testing.T) {
		category := create(t, "Video", "video")

		updated, err := service.Update(ctx, category.ID, catalogapp.UpdateCategoryRequest{
			Name:        strPtr("Video & Photo"),
			Description: strPtr("Cameras and capture gear"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Video & Photo", updated.Name)
		assert.Equal(t, "video", updated.Slug)
		assert.Equal(t, "Cameras and capture gear", updated.Description)
	})

	t.Run("rejects a slug already in use", func(t *testing.T) {
		create(t, "Gaming", "gaming")
		category := create(t, "Consoles", "consoles")

		_, err := service.Update(ctx, category.ID, catalogapp.UpdateCategoryRequest{
			Slug: strPtr("gaming"),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SLUG_EXISTS", domainErr.Code)
	})

	t.Run("keeping the same slug is not a conflict", func(t *testing.T) {
		category := create(t, "Storage", "storage")

		updated, err := service.Update(ctx, category.ID, catalogapp.UpdateCategoryRequest{
			Slug: strPtr("storage"),
			Name: strPtr("Storage & Memory"),
		})
		require.NoError(t, err)
		assert.Equal(t, "storage", updated.Slug)
	})

	t.Run("returns not found for an unknown category", func(t *testing.T) {
		_, err := service.Update(ctx, uuid.New(), catalogapp.UpdateCategoryRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	db := setupCatalogTestDB(t)
	service := newCategoryService(db)
	products := newProductService(db)
	ctx := context.Background()

	t.Run("removes the category and its products", func(t *testing.T) {
		category, err := service.Create(ctx, catalogapp.CreateCategoryRequest{Name: "Doomed", Slug: "doomed"})
		require.NoError(t, err)

		product, err := products.Create(ctx, catalogapp.CreateProductRequest{
			CategoryID: category.ID,
			Name:       "Orphaned Gadget",
			SKU:        "OG-1",
			Price:      decimal.RequireFromString("15.00"),
		})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, category.ID))

		_, err = service.GetByID(ctx, category.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		var count int64
		require.NoError(t, db.Model(&catalog.Product{}).Where("id = ?", product.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns not found for an unknown category", func(t *testing.T) {
		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCategoryService_List(t *testing.T) {
	db := setupCatalogTestDB(t)
	service := newCategoryService(db)
	ctx := context.Background()

	for _, c := range []struct{ name, slug string }{
		{"Audio", "audio"},
		{"Video", "video"},
		{"Accessories", "accessories"},
	} {
		_, err := service.Create(ctx, catalogapp.CreateCategoryRequest{Name: c.name, Slug: c.slug})
		require.NoError(t, err)
	}

	t.Run("lists alphabetically", func(t *testing.T) {
		responses, total, err := service.List(ctx, catalogapp.CategoryListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, responses, 3)
		assert.Equal(t, "Accessories", responses[0].Name)
	})

	t.Run("searches by name", func(t *testing.T) {
		responses, total, err := service.List(ctx, catalogapp.CategoryListFilter{Search: "Vid"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, "Video", responses[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		responses, total, err := service.List(ctx, catalogapp.CategoryListFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, responses, 1)
	})
}
