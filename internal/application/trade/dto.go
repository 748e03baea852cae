package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/trade"
)

// OrderItemInput identifies a product and quantity for a new order.
// Pricing and product details are snapshotted server-side.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is the input for creating a sales order
type CreateOrderRequest struct {
	CustomerID      uuid.UUID        `json:"customer_id" binding:"required"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Status          string           `json:"status"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentStatus   string           `json:"payment_status"`
	AssignedTo      *uuid.UUID       `json:"assigned_to"`
	ShippingAddress string           `json:"shipping_address"`
	BillingAddress  string           `json:"billing_address"`
	Notes           string           `json:"notes"`
	DiscountTotal   decimal.Decimal  `json:"discount_total"`
	TaxTotal        decimal.Decimal  `json:"tax_total"`
	ShippingFee     decimal.Decimal  `json:"shipping_fee"`
	CreatedBy       *uuid.UUID       `json:"-"`
}

// UpdateOrderRequest is the input for a partial order update. Nil
// fields are left untouched. Line items are immutable after creation;
// only order-level fields can change.
type UpdateOrderRequest struct {
	Status          *string          `json:"status"`
	PaymentMethod   *string          `json:"payment_method"`
	PaymentStatus   *string          `json:"payment_status"`
	AssignedTo      *uuid.UUID       `json:"assigned_to"`
	ShippingAddress *string          `json:"shipping_address"`
	BillingAddress  *string          `json:"billing_address"`
	Notes           *string          `json:"notes"`
	DiscountTotal   *decimal.Decimal `json:"discount_total"`
	TaxTotal        *decimal.Decimal `json:"tax_total"`
	ShippingFee     *decimal.Decimal `json:"shipping_fee"`
	UpdatedBy       *uuid.UUID       `json:"-"`
}

// OrderListFilter contains filter options for order queries
type OrderListFilter struct {
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=draft confirmed paid fulfilled cancelled"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=unpaid paid refunded"`
	CustomerID    *uuid.UUID `form:"customer_id"`
	AssignedTo    *uuid.UUID `form:"assigned_to"`
	FromDate      *time.Time `form:"from_date"`
	ToDate        *time.Time `form:"to_date"`
}

// OrderItemResponse represents a line item in API responses
type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      *uuid.UUID      `json:"product_id,omitempty"`
	ProductName    string          `json:"product_name"`
	SKU            string          `json:"sku"`
	ThumbnailImage string          `json:"thumbnail_image,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// OrderResponse represents a full sales order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      uuid.UUID           `json:"customer_id"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	AssignedTo      *uuid.UUID          `json:"assigned_to,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	BillingAddress  string              `json:"billing_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountTotal   decimal.Decimal     `json:"discount_total"`
	TaxTotal        decimal.Decimal     `json:"tax_total"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	CreatedBy       *uuid.UUID          `json:"created_by,omitempty"`
	UpdatedBy       *uuid.UUID          `json:"updated_by,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	FulfilledAt     *time.Time          `json:"fulfilled_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderListResponse represents an order in list responses, without
// line-item detail
type OrderListResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	AssignedTo    *uuid.UUID      `json:"assigned_to,omitempty"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToOrderItemResponse converts a line item to its response form
func ToOrderItemResponse(item *trade.SalesOrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		SKU:            item.SKU,
		ThumbnailImage: item.ThumbnailImage,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		TotalPrice:     item.TotalPrice,
	}
}

// ToOrderResponse converts a sales order to its full response form
func ToOrderResponse(order *trade.SalesOrder) *OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToOrderItemResponse(&order.Items[i])
	}

	return &OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Status:          order.Status.String(),
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   string(order.PaymentStatus),
		AssignedTo:      order.AssignedTo,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Notes:           order.Notes,
		Subtotal:        order.Subtotal,
		DiscountTotal:   order.DiscountTotal,
		TaxTotal:        order.TaxTotal,
		ShippingFee:     order.ShippingFee,
		GrandTotal:      order.GrandTotal,
		CreatedBy:       order.CreatedBy,
		UpdatedBy:       order.UpdatedBy,
		ConfirmedAt:     order.ConfirmedAt,
		PaidAt:          order.PaidAt,
		FulfilledAt:     order.FulfilledAt,
		CancelledAt:     order.CancelledAt,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}
}

// ToOrderListResponse converts a sales order to its list response form
func ToOrderListResponse(order *trade.SalesOrder) OrderListResponse {
	return OrderListResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		Status:        order.Status.String(),
		PaymentStatus: string(order.PaymentStatus),
		AssignedTo:    order.AssignedTo,
		GrandTotal:    order.GrandTotal,
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
