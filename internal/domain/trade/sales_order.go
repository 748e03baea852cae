package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// RequiresInventory reports whether the status commits the order's
// stock. Orders in a committed status have had (or must have) their
// inventory deducted.
func (s OrderStatus) RequiresInventory() bool {
	switch s {
	case OrderStatusConfirmed, OrderStatusPaid, OrderStatusFulfilled:
		return true
	}
	return false
}

// PaymentStatus represents how far payment has progressed
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// SalesOrderItem represents a line item in a sales order. Product
// details are snapshotted at order-creation time so later catalog
// edits never change historical orders. ProductID is nullable: when
// the product is deleted the line survives without the reference.
type SalesOrderItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      *uuid.UUID      `gorm:"type:uuid"`
	ProductName    string          `gorm:"type:varchar(255);not null"`
	SKU            string          `gorm:"column:sku;type:varchar(64)"`
	ThumbnailImage string          `gorm:"type:varchar(2048)"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// NewSalesOrderItem creates a line item from a product snapshot
func NewSalesOrderItem(productID uuid.UUID, productName, sku, thumbnail string, quantity int, unitPrice decimal.Decimal) (*SalesOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	pid := productID
	return &SalesOrderItem{
		ID:             uuid.New(),
		ProductID:      &pid,
		ProductName:    productName,
		SKU:            sku,
		ThumbnailImage: thumbnail,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// SalesOrder represents a sales order aggregate root. Totals are
// derived from the line items plus order-level discount, tax and
// shipping; the aggregate rejects any combination that would drive
// the grand total negative.
type SalesOrder struct {
	shared.BaseEntity
	OrderNumber     string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          OrderStatus     `gorm:"type:varchar(50);not null;default:draft;index"`
	PaymentMethod   string          `gorm:"type:varchar(50);not null;default:cash"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(50);not null;default:unpaid"`
	AssignedTo      *uuid.UUID      `gorm:"type:uuid;index"`
	ShippingAddress string          `gorm:"type:text"`
	BillingAddress  string          `gorm:"type:text"`
	Notes           string          `gorm:"type:text"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
	UpdatedBy       *uuid.UUID      `gorm:"type:uuid"`
	ConfirmedAt     *time.Time
	PaidAt          *time.Time
	FulfilledAt     *time.Time
	CancelledAt     *time.Time
	Items           []SalesOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order with at least one line item
func NewSalesOrder(orderNumber string, customerID uuid.UUID, items []SalesOrderItem) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order items required")
	}

	order := &SalesOrder{
		BaseEntity:    shared.NewBaseEntity(),
		OrderNumber:   orderNumber,
		CustomerID:    customerID,
		Status:        OrderStatusDraft,
		PaymentMethod: "cash",
		PaymentStatus: PaymentStatusUnpaid,
		Subtotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		TaxTotal:      decimal.Zero,
		ShippingFee:   decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items
	return order, nil
}

// SetCharges replaces the order-level discount, tax and shipping
// amounts. None of them may be negative.
func (o *SalesOrder) SetCharges(discount, tax, shipping decimal.Decimal) error {
	if discount.IsNegative() || tax.IsNegative() || shipping.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER", "Discount, tax and shipping cannot be negative")
	}
	o.DiscountTotal = discount
	o.TaxTotal = tax
	o.ShippingFee = shipping
	return nil
}

// RecalculateTotals rederives the subtotal from the current line
// items and the grand total from subtotal, discount, tax and
// shipping. A negative grand total is rejected and leaves the order
// unchanged.
func (o *SalesOrder) RecalculateTotals() error {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}

	grandTotal := subtotal.Sub(o.DiscountTotal).Add(o.TaxTotal).Add(o.ShippingFee)
	if grandTotal.IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL", "Grand total cannot be negative")
	}

	o.Subtotal = subtotal
	o.GrandTotal = grandTotal
	return nil
}

// ChangeStatus moves the order to the given status and stamps the
// matching lifecycle timestamp. The stamp is applied every time the
// status appears in an update, even when the order is already in
// that status.
func (o *SalesOrder) ChangeStatus(status OrderStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid order status")
	}
	o.Status = status
	switch status {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusPaid:
		o.PaidAt = &now
	case OrderStatusFulfilled:
		o.FulfilledAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// MarkUpdated records the actor and time of the latest mutation
func (o *SalesOrder) MarkUpdated(actorID *uuid.UUID, now time.Time) {
	o.UpdatedBy = actorID
	o.UpdatedAt = now
}
