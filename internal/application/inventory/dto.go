package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/inventory"
)

// CreateAdjustmentRequest is the input for a manual stock correction.
// Quantity is signed: positive adds stock, negative removes it.
type CreateAdjustmentRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required"`
	Memo      string     `json:"memo"`
	ActorID   *uuid.UUID `json:"-"`
}

// TransactionListFilter contains filter options for ledger queries
type TransactionListFilter struct {
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	ProductID *uuid.UUID `form:"product_id"`
	OrderID   *uuid.UUID `form:"order_id"`
	Type      string     `form:"type" binding:"omitempty,oneof=sale return adjustment"`
	FromDate  *time.Time `form:"from_date"`
	ToDate    *time.Time `form:"to_date"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Type      string     `json:"type"`
	Quantity  int        `json:"quantity"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	Memo      string     `json:"memo,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToTransactionResponse converts a ledger entry to its response form
func ToTransactionResponse(tx *inventory.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        tx.ID,
		ProductID: tx.ProductID,
		OrderID:   tx.OrderID,
		Type:      tx.Type.String(),
		Quantity:  tx.Quantity,
		ActorID:   tx.ActorID,
		Memo:      tx.Memo,
		CreatedAt: tx.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of ledger entries
func ToTransactionResponses(txs []inventory.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i])
	}
	return responses
}
