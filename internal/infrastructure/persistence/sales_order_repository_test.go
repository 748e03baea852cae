package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

func setupSalesOrderRepoTest(t *testing.T) (*GormSalesOrderRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&trade.SalesOrder{}, &trade.SalesOrderItem{}))

	return NewGormSalesOrderRepository(db), db
}

func buildRepoTestOrder(t *testing.T, orderNumber string) *trade.SalesOrder {
	t.Helper()

	item, err := trade.NewSalesOrderItem(
		uuid.New(), "Mechanical Keyboard", fmt.Sprintf("MK-%s", uuid.NewString()[:8]), "",
		1, decimal.NewFromInt(75),
	)
	require.NoError(t, err)

	order, err := trade.NewSalesOrder(orderNumber, uuid.New(), []trade.SalesOrderItem{*item})
	require.NoError(t, err)
	require.NoError(t, order.RecalculateTotals())
	return order
}

func TestGormSalesOrderRepository_SaveOrderNumberConflict(t *testing.T) {
	repo, _ := setupSalesOrderRepoTest(t)
	ctx := context.Background()

	first := buildRepoTestOrder(t, "ORD20260830-0001")
	require.NoError(t, repo.Save(ctx, first))

	second := buildRepoTestOrder(t, "ORD20260830-0001")
	err := repo.Save(ctx, second)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// Re-saving the winner is not a conflict
	assert.NoError(t, repo.Save(ctx, first))
}

func TestGormSalesOrderRepository_LastOrderNumberWithPrefix(t *testing.T) {
	repo, _ := setupSalesOrderRepoTest(t)
	ctx := context.Background()

	last, err := repo.LastOrderNumberWithPrefix(ctx, "ORD20260830")
	require.NoError(t, err)
	assert.Empty(t, last)

	for _, number := range []string{"ORD20260830-0001", "ORD20260830-0003", "ORD20260830-0002", "ORD20260829-0009"} {
		require.NoError(t, repo.Save(ctx, buildRepoTestOrder(t, number)))
	}

	last, err = repo.LastOrderNumberWithPrefix(ctx, "ORD20260830")
	require.NoError(t, err)
	assert.Equal(t, "ORD20260830-0003", last)
}
