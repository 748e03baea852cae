package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormTransactionRepository implements the inventory ledger's
// TransactionRepository using GORM. The ledger is append-only; there
// is deliberately no update or delete.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append persists a new ledger entry
func (r *GormTransactionRepository) Append(ctx context.Context, tx *inventory.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByID finds a ledger entry by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Transaction, error) {
	var transaction inventory.Transaction
	if err := r.db.WithContext(ctx).First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

// FindAll finds ledger entries matching the filter, newest first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Transaction, error) {
	var transactions []inventory.Transaction
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Transaction{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Count counts ledger entries matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&inventory.Transaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForOrder checks whether an entry of the given type exists for
// the order
func (r *GormTransactionRepository) ExistsForOrder(ctx context.Context, orderID uuid.UUID, txType inventory.TransactionType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Transaction{}).
		Where("order_id = ? AND type = ?", orderID, txType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTransactionRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "from_date":
			query = query.Where("created_at >= ?", value)
		case "to_date":
			query = query.Where("created_at <= ?", value)
		}
	}
	return query
}

// Ensure GormTransactionRepository implements TransactionRepository
var _ inventory.TransactionRepository = (*GormTransactionRepository)(nil)
