package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	product, err := NewProduct(uuid.New(), "Wireless Mouse", "wireless-mouse-3f9a1", "WM-001", decimal.RequireFromString("9.99"))
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("defaults to draft with zero stock", func(t *testing.T) {
		product := newTestProduct(t)
		assert.Equal(t, ProductStatusDraft, product.Status)
		assert.Equal(t, 0, product.Stock)
		assert.False(t, product.IsPublished())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(uuid.New(), "Mouse", "mouse-00000", "M-001", decimal.RequireFromString("-0.01"))
		assert.Error(t, err)
	})

	t.Run("rejects missing identifiers", func(t *testing.T) {
		price := decimal.RequireFromString("1.00")
		_, err := NewProduct(uuid.Nil, "Mouse", "mouse-00000", "M-001", price)
		assert.Error(t, err)
		_, err = NewProduct(uuid.New(), "", "mouse-00000", "M-001", price)
		assert.Error(t, err)
		_, err = NewProduct(uuid.New(), "Mouse", "", "M-001", price)
		assert.Error(t, err)
		_, err = NewProduct(uuid.New(), "Mouse", "mouse-00000", "", price)
		assert.Error(t, err)
	})
}

func TestProduct_SetStatus(t *testing.T) {
	product := newTestProduct(t)

	require.NoError(t, product.SetStatus(ProductStatusPublished))
	assert.True(t, product.IsPublished())

	err := product.SetStatus(ProductStatus("hidden"))
	assert.Error(t, err)
	assert.Equal(t, ProductStatusPublished, product.Status)
}

func TestProduct_SetPrice(t *testing.T) {
	product := newTestProduct(t)

	require.NoError(t, product.SetPrice(decimal.RequireFromString("19.99")))
	assert.Equal(t, "19.99", product.Price.String())

	err := product.SetPrice(decimal.RequireFromString("-1"))
	assert.Error(t, err)
	assert.Equal(t, "19.99", product.Price.String())
}

func TestProductBadge_IsValid(t *testing.T) {
	assert.True(t, ProductBadgeNew.IsValid())
	assert.True(t, ProductBadgeSale.IsValid())
	assert.True(t, ProductBadgeFeatured.IsValid())
	assert.False(t, ProductBadge("hot").IsValid())
}
