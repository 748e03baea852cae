package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// Adjustment describes a single stock movement to apply.
type Adjustment struct {
	ProductID uuid.UUID
	// Delta is the signed change: negative deducts, positive restores.
	Delta   int
	Type    inventory.TransactionType
	OrderID *uuid.UUID
	ActorID *uuid.UUID
	Memo    string
	// AllowNegative permits the product's stock to go below zero.
	// Order flows always allow it so a committed sale is never blocked
	// by a stale count; manual corrections allow it so the count can be
	// fixed downward past zero.
	AllowNegative bool
}

// StockLedger applies stock movements atomically: every change updates
// the product's on-hand quantity and appends a ledger entry in the same
// transaction. Construct it over transaction-scoped repositories; the
// ledger itself never opens a transaction.
type StockLedger struct {
	products catalog.ProductRepository
	ledger   inventory.TransactionRepository
}

// NewStockLedger creates a StockLedger over the given repositories
func NewStockLedger(products catalog.ProductRepository, ledger inventory.TransactionRepository) *StockLedger {
	return &StockLedger{
		products: products,
		ledger:   ledger,
	}
}

// Apply locks the product row, moves its stock by the adjustment's
// delta and appends the matching ledger entry. It fails with
// INSUFFICIENT_STOCK when the move would take stock below zero and the
// adjustment does not allow that.
func (l *StockLedger) Apply(ctx context.Context, adj Adjustment) (*inventory.Transaction, error) {
	product, err := l.products.FindByIDForUpdate(ctx, adj.ProductID)
	if err != nil {
		return nil, err
	}

	newStock := product.Stock + adj.Delta
	if !adj.AllowNegative && newStock < 0 {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for product %s", product.Name))
	}
	product.Stock = newStock
	product.Touch()

	tx, err := inventory.NewTransaction(adj.ProductID, adj.Type, adj.Delta)
	if err != nil {
		return nil, err
	}
	if adj.OrderID != nil {
		tx.WithOrderID(*adj.OrderID)
	}
	if adj.ActorID != nil {
		tx.WithActorID(*adj.ActorID)
	}
	if adj.Memo != "" {
		tx.WithMemo(adj.Memo)
	}

	if err := l.products.Save(ctx, product); err != nil {
		return nil, err
	}
	if err := l.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeductForOrder deducts stock for every line item of a committed
// order. The ledger is the idempotency guard: when a sale entry already
// exists for the order the whole call is a no-op, so re-confirming or
// replaying never double-deducts. Line items whose product has been
// deleted are skipped.
func (l *StockLedger) DeductForOrder(ctx context.Context, order *trade.SalesOrder, actorID *uuid.UUID) error {
	if len(order.Items) == 0 {
		return nil
	}
	deducted, err := l.ledger.ExistsForOrder(ctx, order.ID, inventory.TransactionTypeSale)
	if err != nil {
		return err
	}
	if deducted {
		return nil
	}

	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		_, err := l.Apply(ctx, Adjustment{
			ProductID:     *item.ProductID,
			Delta:         -item.Quantity,
			Type:          inventory.TransactionTypeSale,
			OrderID:       &order.ID,
			ActorID:       actorID,
			Memo:          fmt.Sprintf("Order %s", order.OrderNumber),
			AllowNegative: true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RestoreForOrder returns stock for every line item of an order whose
// deduction is being reverted. It only acts when a sale entry exists
// and no return entry does: an order that never deducted has nothing to
// restore, and one already restored must not be restored twice.
func (l *StockLedger) RestoreForOrder(ctx context.Context, order *trade.SalesOrder, actorID *uuid.UUID) error {
	if len(order.Items) == 0 {
		return nil
	}
	deducted, err := l.ledger.ExistsForOrder(ctx, order.ID, inventory.TransactionTypeSale)
	if err != nil {
		return err
	}
	if !deducted {
		return nil
	}
	restored, err := l.ledger.ExistsForOrder(ctx, order.ID, inventory.TransactionTypeReturn)
	if err != nil {
		return err
	}
	if restored {
		return nil
	}

	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		_, err := l.Apply(ctx, Adjustment{
			ProductID:     *item.ProductID,
			Delta:         item.Quantity,
			Type:          inventory.TransactionTypeReturn,
			OrderID:       &order.ID,
			ActorID:       actorID,
			Memo:          fmt.Sprintf("Order %s", order.OrderNumber),
			AllowNegative: true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
