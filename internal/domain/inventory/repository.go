package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// TransactionRepository defines the interface for the append-only
// inventory ledger
type TransactionRepository interface {
	// Append persists a new ledger entry
	Append(ctx context.Context, tx *Transaction) error

	// FindByID finds a ledger entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindAll finds ledger entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Transaction, error)

	// Count counts ledger entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsForOrder checks whether an entry of the given type exists
	// for the order
	ExistsForOrder(ctx context.Context, orderID uuid.UUID, txType TransactionType) (bool, error)
}
