package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupProductHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&inventory.Transaction{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
	))

	service := catalogapp.NewProductService(
		persistence.NewGormProductRepository(db),
		persistence.NewGormCategoryRepository(db),
		zap.NewNop(),
	)
	h := handler.NewProductHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.GET("/products", h.List)
	api.POST("/products", h.Create)
	api.GET("/products/:id", h.GetByID)
	api.GET("/products/slug/:slug", h.GetBySlug)
	api.PUT("/products/:id", h.Update)
	api.DELETE("/products/:id", h.Delete)

	return engine, db
}

func createHandlerTestCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()

	category, err := catalog.NewCategory(name, fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]))
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)
	return category
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create(t *testing.T) {
	engine, db := setupProductHandlerTest(t)
	category := createHandlerTestCategory(t, db, "peripherals")

	t.Run("creates product from valid payload", func(t *testing.T) {
		body, err := json.Marshal(gin.H{
			"category_id": category.ID,
			"name":        "Wireless Mouse",
			"sku":         "WM-1001",
			"price":       "19.99",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "Wireless Mouse", data["name"])
		assert.Equal(t, "WM-1001", data["sku"])
		assert.Equal(t, "draft", data["status"])
		assert.NotEmpty(t, data["slug"])
	})

	t.Run("rejects payload missing required fields", func(t *testing.T) {
		body := []byte(`{"name": "No SKU"}`)

		req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("maps duplicate SKU to conflict code", func(t *testing.T) {
		body, err := json.Marshal(gin.H{
			"category_id": category.ID,
			"name":        "Second Mouse",
			"sku":         "WM-1001",
			"price":       "24.99",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusConflict, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SKU_EXISTS", resp.Error.Code)
	})

	t.Run("maps unknown category to not found", func(t *testing.T) {
		body, err := json.Marshal(gin.H{
			"category_id": uuid.New(),
			"name":        "Orphan",
			"sku":         "OR-0001",
			"price":       "5.00",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CATEGORY_NOT_FOUND", resp.Error.Code)
	})
}

func TestProductHandler_Get(t *testing.T) {
	engine, db := setupProductHandlerTest(t)
	category := createHandlerTestCategory(t, db, "audio")

	product, err := catalog.NewProduct(category.ID, "Studio Headphones", "studio-headphones", "SH-2001", mustDecimal(t, "89.00"))
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	t.Run("returns product by id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products/"+product.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, product.ID.String(), data["id"])
		assert.Equal(t, "Studio Headphones", data["name"])
	})

	t.Run("returns product by slug", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products/slug/studio-headphones", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, product.ID.String(), data["id"])
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products/not-a-uuid", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	engine, db := setupProductHandlerTest(t)
	category := createHandlerTestCategory(t, db, "storage")

	for i := 0; i < 3; i++ {
		product, err := catalog.NewProduct(
			category.ID,
			fmt.Sprintf("External Drive %d", i),
			fmt.Sprintf("external-drive-%d", i),
			fmt.Sprintf("ED-%04d", i),
			mustDecimal(t, "59.99"),
		)
		require.NoError(t, err)
		require.NoError(t, db.Create(product).Error)
	}

	t.Run("lists products with pagination meta", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products?page=1&page_size=2", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(3), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)
		assert.Len(t, resp.Data.([]any), 2)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products?status=retired", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	engine, db := setupProductHandlerTest(t)
	category := createHandlerTestCategory(t, db, "displays")

	product, err := catalog.NewProduct(category.ID, "Portable Monitor", "portable-monitor", "PM-3001", mustDecimal(t, "149.00"))
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	t.Run("updates price and status", func(t *testing.T) {
		body := []byte(`{"price": "129.00", "status": "published"}`)

		req := httptest.NewRequest("PUT", "/api/v1/products/"+product.ID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeResponse(t, w)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "129", data["price"])
		assert.Equal(t, "published", data["status"])
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		body := []byte(`{"price": "10.00"}`)

		req := httptest.NewRequest("PUT", "/api/v1/products/"+uuid.NewString(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	engine, db := setupProductHandlerTest(t)
	category := createHandlerTestCategory(t, db, "cables")

	product, err := catalog.NewProduct(category.ID, "USB-C Cable", "usb-c-cable", "UC-4001", mustDecimal(t, "9.99"))
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	t.Run("deletes existing product", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/products/"+product.ID.String(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code)

		var count int64
		require.NoError(t, db.Model(&catalog.Product{}).Where("id = ?", product.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/v1/products/"+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
