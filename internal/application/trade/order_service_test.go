package trade_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&partner.Customer{},
		&catalog.Category{},
		&catalog.Product{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
		&inventory.Transaction{},
	)
	require.NoError(t, err)

	return db
}

func newOrderService(db *gorm.DB) *tradeapp.OrderService {
	return tradeapp.NewOrderService(
		persistence.NewGormTransactionScope(db),
		persistence.NewGormSalesOrderRepository(db),
		persistence.NewGormCustomerRepository(db),
		persistence.NewGormUserRepository(db),
		zap.NewNop(),
	)
}

func createOrderTestCustomer(t *testing.T, db *gorm.DB) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Jordan Reyes", "+1555"+uuid.NewString()[:7])
	require.NoError(t, err)
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createOrderTestProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *catalog.Product {
	t.Helper()

	category, err := catalog.NewCategory("Peripherals "+uuid.NewString()[:8], "peripherals-"+uuid.NewString()[:8])
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)

	product, err := catalog.NewProduct(category.ID, name, "slug-"+uuid.NewString()[:8], "SKU-"+uuid.NewString()[:8], decimal.RequireFromString(price))
	require.NoError(t, err)
	product.Stock = stock
	require.NoError(t, db.Create(product).Error)
	return product
}

func createOrderTestUser(t *testing.T, db *gorm.DB) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.NewString()[:8]+"@example.com", "Sam Okafor", "secret-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)
	return user
}

func orderStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var product catalog.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.Stock
}

func ledgerCount(t *testing.T, db *gorm.DB, orderID uuid.UUID, txType inventory.TransactionType) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&inventory.Transaction{}).
		Where("order_id = ? AND type = ?", orderID, txType).
		Count(&count).Error)
	return count
}

func TestOrderService_Create(t *testing.T) {
	db := setupOrderTestDB(t)
	service := newOrderService(db)
	ctx := context.Background()

	t.Run("creates a draft order with snapshotted items and derived totals", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Keyboard", "9.99", 10)

		response, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID:    customer.ID,
			Items:         []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
			DiscountTotal: decimal.RequireFromString("1.00"),
			TaxTotal:      decimal.RequireFromString("2.50"),
			ShippingFee:   decimal.RequireFromString("5.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, "draft", response.Status)
		assert.Equal(t, "cash", response.PaymentMethod)
		assert.Equal(t, "unpaid", response.PaymentStatus)
		assert.Equal(t, trade.OrderNumberPrefix(time.Now().UTC())+"-0001", response.OrderNumber)

		assert.Equal(t, "29.97", response.Subtotal.String())
		assert.Equal(t, "36.47", response.GrandTotal.String())

		require.Len(t, response.Items, 1)
		item := response.Items[0]
		assert.Equal(t, "Keyboard", item.ProductName)
		assert.Equal(t, product.SKU, item.SKU)
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, "9.99", item.UnitPrice.String())
		assert.Equal(t, "29.97", item.TotalPrice.String())

		// lifecycle timestamps are stamped by status changes, never on create
		assert.Nil(t, response.ConfirmedAt)
		assert.Nil(t, response.PaidAt)

		// drafts leave stock alone
		assert.Equal(t, 10, orderStock(t, db, product.ID))
	})

	t.Run("allocates sequential order numbers within a day", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Mouse", "5.00", 10)

		first, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		second, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		prefix := trade.OrderNumberPrefix(time.Now().UTC())
		assert.Equal(t, prefix+"-0002", first.OrderNumber)
		assert.Equal(t, prefix+"-0003", second.OrderNumber)
	})

	t.Run("deducts stock when created in a committed status", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Monitor", "120.00", 6)

		response, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
			Status:     "confirmed",
		})
		require.NoError(t, err)

		assert.Equal(t, "confirmed", response.Status)
		assert.Nil(t, response.ConfirmedAt)
		assert.Equal(t, 4, orderStock(t, db, product.ID))
		assert.Equal(t, int64(1), ledgerCount(t, db, response.ID, inventory.TransactionTypeSale))
	})

	t.Run("rejects an unknown customer", func(t *testing.T) {
		product := createOrderTestProduct(t, db, "Cable", "3.00", 5)

		_, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: uuid.New(),
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
	})

	t.Run("rolls back when a product is unknown", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Webcam", "45.00", 5)

		_, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []tradeapp.OrderItemInput{
				{ProductID: product.ID, Quantity: 1},
				{ProductID: uuid.New(), Quantity: 1},
			},
			Status: "confirmed",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)

		// nothing from the failed order survives
		assert.Equal(t, 5, orderStock(t, db, product.ID))
		var orderCount int64
		require.NoError(t, db.Model(&trade.SalesOrder{}).Where("customer_id = ?", customer.ID).Count(&orderCount).Error)
		assert.Equal(t, int64(0), orderCount)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Dock", "80.00", 5)

		_, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			Status:     "shipped",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("rejects an unknown assignee", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Hub", "25.00", 5)
		ghost := uuid.New()

		_, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			AssignedTo: &ghost,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ASSIGNEE_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects charges that drive the total negative", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Stand", "10.00", 5)

		_, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID:    customer.ID,
			Items:         []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
			DiscountTotal: decimal.RequireFromString("50.00"),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOTAL", domainErr.Code)
	})
}

func TestOrderService_Update(t *testing.T) {
	db := setupOrderTestDB(t)
	service := newOrderService(db)
	ctx := context.Background()

	createDraft := func(t *testing.T, stock int) (*tradeapp.OrderResponse, *catalog.Product) {
		t.Helper()
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Keyboard", "9.99", stock)
		response, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
		})
		require.NoError(t, err)
		return response, product
	}

	strPtr := func(s string) *string { return &s }

	t.Run("confirming deducts stock and stamps the timestamp", func(t *testing.T) {
		order, product := createDraft(t, 10)

		updated, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{
			Status: strPtr("confirmed"),
		})
		require.NoError(t, err)

		assert.Equal(t, "confirmed", updated.Status)
		require.NotNil(t, updated.ConfirmedAt)
		assert.Equal(t, 8, orderStock(t, db, product.ID))
		assert.Equal(t, int64(1), ledgerCount(t, db, order.ID, inventory.TransactionTypeSale))
	})

	t.Run("moving between committed statuses leaves stock alone", func(t *testing.T) {
		order, product := createDraft(t, 10)

		_, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("confirmed")})
		require.NoError(t, err)
		updated, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("paid")})
		require.NoError(t, err)

		require.NotNil(t, updated.PaidAt)
		assert.Equal(t, 8, orderStock(t, db, product.ID))
		assert.Equal(t, int64(1), ledgerCount(t, db, order.ID, inventory.TransactionTypeSale))
	})

	t.Run("cancelling a committed order restores stock", func(t *testing.T) {
		order, product := createDraft(t, 10)

		_, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("confirmed")})
		require.NoError(t, err)
		updated, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("cancelled")})
		require.NoError(t, err)

		require.NotNil(t, updated.CancelledAt)
		assert.Equal(t, 10, orderStock(t, db, product.ID))
		assert.Equal(t, int64(1), ledgerCount(t, db, order.ID, inventory.TransactionTypeReturn))
	})

	t.Run("cancelling a draft never touches stock", func(t *testing.T) {
		order, product := createDraft(t, 10)

		_, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("cancelled")})
		require.NoError(t, err)

		assert.Equal(t, 10, orderStock(t, db, product.ID))
		assert.Equal(t, int64(0), ledgerCount(t, db, order.ID, inventory.TransactionTypeSale))
		assert.Equal(t, int64(0), ledgerCount(t, db, order.ID, inventory.TransactionTypeReturn))
	})

	t.Run("changing charges recalculates the totals", func(t *testing.T) {
		order, _ := createDraft(t, 10)
		require.Equal(t, "19.98", order.GrandTotal.String())

		tax := decimal.RequireFromString("2.00")
		shipping := decimal.RequireFromString("4.00")
		updated, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{
			TaxTotal:    &tax,
			ShippingFee: &shipping,
		})
		require.NoError(t, err)

		assert.Equal(t, "19.98", updated.Subtotal.String())
		assert.Equal(t, "25.98", updated.GrandTotal.String())
	})

	t.Run("records the acting user", func(t *testing.T) {
		order, _ := createDraft(t, 10)
		actor := createOrderTestUser(t, db)

		notes := "Rush delivery"
		updated, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{
			Notes:     &notes,
			UpdatedBy: &actor.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, "Rush delivery", updated.Notes)
		require.NotNil(t, updated.UpdatedBy)
		assert.Equal(t, actor.ID, *updated.UpdatedBy)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		order, _ := createDraft(t, 10)

		_, err := service.Update(ctx, order.ID, tradeapp.UpdateOrderRequest{Status: strPtr("shipped")})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("returns not found for an unknown order", func(t *testing.T) {
		_, err := service.Update(ctx, uuid.New(), tradeapp.UpdateOrderRequest{Status: strPtr("confirmed")})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Delete(t *testing.T) {
	db := setupOrderTestDB(t)
	service := newOrderService(db)
	ctx := context.Background()

	t.Run("deleting a committed order restores stock", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Monitor", "120.00", 6)

		order, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
			Status:     "confirmed",
		})
		require.NoError(t, err)
		require.Equal(t, 4, orderStock(t, db, product.ID))

		require.NoError(t, service.Delete(ctx, order.ID))

		assert.Equal(t, 6, orderStock(t, db, product.ID))
		_, err = service.GetByID(ctx, order.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var itemCount int64
		require.NoError(t, db.Model(&trade.SalesOrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(0), itemCount)
	})

	t.Run("deleting a draft leaves stock untouched", func(t *testing.T) {
		customer := createOrderTestCustomer(t, db)
		product := createOrderTestProduct(t, db, "Mouse", "5.00", 8)

		order, err := service.Create(ctx, tradeapp.CreateOrderRequest{
			CustomerID: customer.ID,
			Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 3}},
		})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, order.ID))
		assert.Equal(t, 8, orderStock(t, db, product.ID))
	})

	t.Run("returns not found for an unknown order", func(t *testing.T) {
		err := service.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestOrderService_Queries(t *testing.T) {
	db := setupOrderTestDB(t)
	service := newOrderService(db)
	ctx := context.Background()

	customer := createOrderTestCustomer(t, db)
	other := createOrderTestCustomer(t, db)
	product := createOrderTestProduct(t, db, "Keyboard", "9.99", 100)

	first, err := service.Create(ctx, tradeapp.CreateOrderRequest{
		CustomerID: customer.ID,
		Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
		Status:     "confirmed",
	})
	require.NoError(t, err)
	_, err = service.Create(ctx, tradeapp.CreateOrderRequest{
		CustomerID: other.ID,
		Items:      []tradeapp.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	t.Run("finds by order number", func(t *testing.T) {
		found, err := service.GetByOrderNumber(ctx, first.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)
		require.Len(t, found.Items, 1)
	})

	t.Run("returns not found for an unknown number", func(t *testing.T) {
		_, err := service.GetByOrderNumber(ctx, "ORD19700101-0001")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists all orders with totals", func(t *testing.T) {
		responses, total, err := service.List(ctx, tradeapp.OrderListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, responses, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		responses, total, err := service.List(ctx, tradeapp.OrderListFilter{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, first.ID, responses[0].ID)
		assert.Equal(t, 1, responses[0].ItemCount)
	})

	t.Run("filters by customer", func(t *testing.T) {
		_, total, err := service.List(ctx, tradeapp.OrderListFilter{CustomerID: &other.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("searches by order number fragment", func(t *testing.T) {
		_, total, err := service.List(ctx, tradeapp.OrderListFilter{Search: first.OrderNumber})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}
