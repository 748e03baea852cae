package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	invapp "github.com/storefront/backend/internal/application/inventory"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/partner"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// maxNumberAllocationAttempts bounds retries when two creates collide
// on the same order number.
const maxNumberAllocationAttempts = 3

// OrderService drives the sales order lifecycle. Every mutation runs in
// a single database transaction so the order, its line items, the
// product stock counts and the inventory ledger always move together.
type OrderService struct {
	scope        invapp.TransactionScope
	orderRepo    trade.SalesOrderRepository
	customerRepo partner.CustomerRepository
	userRepo     identity.UserRepository
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope invapp.TransactionScope,
	orderRepo trade.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:        scope,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Create creates a sales order. Line items snapshot the product's
// current name, SKU, thumbnail and price. When the initial status
// already commits the order, stock is deducted in the same transaction;
// the matching lifecycle timestamp is NOT stamped on create, only
// status changes through Update stamp it.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer not found")
		}
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order items required")
	}

	status := trade.OrderStatusDraft
	if req.Status != "" {
		status = trade.OrderStatus(req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Invalid order status")
		}
	}
	paymentStatus := trade.PaymentStatusUnpaid
	if req.PaymentStatus != "" {
		paymentStatus = trade.PaymentStatus(req.PaymentStatus)
		if !paymentStatus.IsValid() {
			return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Invalid payment status")
		}
	}

	if req.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.AssignedTo); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("ASSIGNEE_NOT_FOUND", "Assigned user not found")
			}
			return nil, err
		}
	}

	now := time.Now().UTC()

	var order *trade.SalesOrder
	create := func() error {
		return s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
			items := make([]trade.SalesOrderItem, 0, len(req.Items))
			for _, input := range req.Items {
				product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
					}
					return err
				}

				item, err := trade.NewSalesOrderItem(
					product.ID, product.Name, product.SKU, product.ThumbnailImage,
					input.Quantity, product.Price,
				)
				if err != nil {
					return err
				}
				items = append(items, *item)
			}

			// The last allocated number for today is read inside the
			// transaction so concurrent creates serialize on the unique
			// order_number index.
			prefix := trade.OrderNumberPrefix(now)
			last, err := repos.OrderRepo().LastOrderNumberWithPrefix(ctx, prefix)
			if err != nil {
				return err
			}
			orderNumber := trade.NextOrderNumber(last, now)

			order, err = trade.NewSalesOrder(orderNumber, req.CustomerID, items)
			if err != nil {
				return err
			}
			order.Status = status
			order.PaymentStatus = paymentStatus
			if req.PaymentMethod != "" {
				order.PaymentMethod = req.PaymentMethod
			}
			order.AssignedTo = req.AssignedTo
			order.ShippingAddress = req.ShippingAddress
			order.BillingAddress = req.BillingAddress
			order.Notes = req.Notes
			order.CreatedBy = req.CreatedBy

			if err := order.SetCharges(req.DiscountTotal, req.TaxTotal, req.ShippingFee); err != nil {
				return err
			}
			if err := order.RecalculateTotals(); err != nil {
				return err
			}

			if err := repos.OrderRepo().Save(ctx, order); err != nil {
				return err
			}

			if order.Status.RequiresInventory() {
				ledger := invapp.NewStockLedger(repos.ProductRepo(), repos.LedgerRepo())
				if err := ledger.DeductForOrder(ctx, order, req.CreatedBy); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// A create racing another for the same number loses on the unique
	// order_number index and reallocates from the fresh maximum.
	var err error
	for attempt := 0; attempt < maxNumberAllocationAttempts; attempt++ {
		if err = create(); !errors.Is(err, shared.ErrAlreadyExists) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()))

	return ToOrderResponse(order), nil
}

// GetByID retrieves an order with its line items
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// GetByOrderNumber retrieves an order by its human-readable number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order), nil
}

// List retrieves orders with filtering and pagination, newest first
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentStatus != "" {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.AssignedTo != nil {
		domainFilter.Filters["assigned_to"] = *filter.AssignedTo
	}
	if filter.FromDate != nil {
		domainFilter.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		domainFilter.Filters["to_date"] = *filter.ToDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListResponse(&orders[i])
	}
	return responses, total, nil
}

// Update applies a partial update to an order. A status present in the
// request stamps its lifecycle timestamp even when the status does not
// change. Crossing the committed boundary moves stock: entering a
// committed status deducts, leaving one restores; both are guarded by
// the ledger so replays are no-ops.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if req.Status != nil && !trade.OrderStatus(*req.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid order status")
	}
	if req.PaymentStatus != nil && !trade.PaymentStatus(*req.PaymentStatus).IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "Invalid payment status")
	}
	if req.AssignedTo != nil {
		if _, err := s.userRepo.FindByID(ctx, *req.AssignedTo); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("ASSIGNEE_NOT_FOUND", "Assigned user not found")
			}
			return nil, err
		}
	}

	now := time.Now().UTC()

	var order *trade.SalesOrder
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		previousStatus := order.Status

		if req.Status != nil {
			if err := order.ChangeStatus(trade.OrderStatus(*req.Status), now); err != nil {
				return err
			}
		}
		if req.PaymentMethod != nil {
			order.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentStatus != nil {
			order.PaymentStatus = trade.PaymentStatus(*req.PaymentStatus)
		}
		if req.AssignedTo != nil {
			order.AssignedTo = req.AssignedTo
		}
		if req.ShippingAddress != nil {
			order.ShippingAddress = *req.ShippingAddress
		}
		if req.BillingAddress != nil {
			order.BillingAddress = *req.BillingAddress
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}

		discount := order.DiscountTotal
		tax := order.TaxTotal
		shipping := order.ShippingFee
		if req.DiscountTotal != nil {
			discount = *req.DiscountTotal
		}
		if req.TaxTotal != nil {
			tax = *req.TaxTotal
		}
		if req.ShippingFee != nil {
			shipping = *req.ShippingFee
		}
		if err := order.SetCharges(discount, tax, shipping); err != nil {
			return err
		}
		if err := order.RecalculateTotals(); err != nil {
			return err
		}

		order.MarkUpdated(req.UpdatedBy, now)

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		needsBefore := previousStatus.RequiresInventory()
		needsAfter := order.Status.RequiresInventory()
		if needsBefore != needsAfter {
			ledger := invapp.NewStockLedger(repos.ProductRepo(), repos.LedgerRepo())
			if needsAfter {
				return ledger.DeductForOrder(ctx, order, req.UpdatedBy)
			}
			return ledger.RestoreForOrder(ctx, order, req.UpdatedBy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status.String()))

	return ToOrderResponse(order), nil
}

// Delete removes an order and its line items. Stock deducted for the
// order is restored first, in the same transaction.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	var orderNumber string
	err := s.scope.Execute(ctx, func(repos invapp.TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		orderNumber = order.OrderNumber

		ledger := invapp.NewStockLedger(repos.ProductRepo(), repos.LedgerRepo())
		if err := ledger.RestoreForOrder(ctx, order, nil); err != nil {
			return err
		}

		return repos.OrderRepo().Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Order deleted", zap.String("order_number", orderNumber))
	return nil
}
