package inventory

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypeSale records stock deducted when an order commits
	TransactionTypeSale TransactionType = "sale"
	// TransactionTypeReturn records stock restored when a committed
	// order is reverted, cancelled or deleted
	TransactionTypeReturn TransactionType = "return"
	// TransactionTypeAdjustment records a manual stock correction
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeReturn, TransactionTypeAdjustment:
		return true
	}
	return false
}

// Transaction represents an immutable record of a stock movement.
// Quantity carries the sign of the movement: negative deducts stock,
// positive restores it. Corrections are made with new transactions,
// never by editing existing rows.
type Transaction struct {
	shared.BaseEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID      `gorm:"type:uuid;index"`
	Type      TransactionType `gorm:"type:varchar(32);not null;index"`
	Quantity  int             `gorm:"not null"`
	ActorID   *uuid.UUID      `gorm:"type:uuid"`
	Memo      string          `gorm:"type:varchar(1024)"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "inventory_transactions"
}

// NewTransaction creates a new inventory transaction
func NewTransaction(productID uuid.UUID, txType TransactionType, quantity int) (*Transaction, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}

	return &Transaction{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       txType,
		Quantity:   quantity,
	}, nil
}

// WithOrderID links the transaction to a sales order
func (t *Transaction) WithOrderID(orderID uuid.UUID) *Transaction {
	t.OrderID = &orderID
	return t
}

// WithActorID records the user who caused the movement
func (t *Transaction) WithActorID(actorID uuid.UUID) *Transaction {
	t.ActorID = &actorID
	return t
}

// WithMemo attaches a free-form note to the transaction
func (t *Transaction) WithMemo(memo string) *Transaction {
	t.Memo = memo
	return t
}

// IsDeduction returns true if the transaction removes stock
func (t *Transaction) IsDeduction() bool {
	return t.Quantity < 0
}
