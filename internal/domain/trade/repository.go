package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order
// persistence
type SalesOrderRepository interface {
	// FindByID finds an order with its line items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds an order by its human-readable number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates an order together with its line items
	Save(ctx context.Context, order *SalesOrder) error

	// Delete deletes an order; line items cascade with it
	Delete(ctx context.Context, id uuid.UUID) error

	// LastOrderNumberWithPrefix returns the lexicographically-greatest
	// order number starting with the given prefix, or "" when none
	// exists
	LastOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error)
}
