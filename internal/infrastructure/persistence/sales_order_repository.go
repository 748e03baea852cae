package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds an order with its line items by ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its human-readable number
func (r *GormSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter, newest first
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("created_at DESC")

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its line items. A
// unique violation on order_number is reported as ErrAlreadyExists so
// the caller can reallocate the number.
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		if isOrderNumberConflict(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}

	currentItemIDs := make([]uuid.UUID, len(order.Items))
	for i, item := range order.Items {
		currentItemIDs[i] = item.ID
	}

	// Remove items that no longer belong to the order
	cleanup := r.db.WithContext(ctx).Where("order_id = ?", order.ID)
	if len(currentItemIDs) > 0 {
		cleanup = cleanup.Where("id NOT IN ?", currentItemIDs)
	}
	if err := cleanup.Delete(&trade.SalesOrderItem{}).Error; err != nil {
		return err
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := r.db.WithContext(ctx).Save(&order.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an order; line items cascade with it
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Explicit item delete keeps sqlite (no FK cascade by default) in
	// step with postgres
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&trade.SalesOrderItem{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&trade.SalesOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LastOrderNumberWithPrefix returns the lexicographically-greatest
// order number starting with the given prefix, or "" when none exists
func (r *GormSalesOrderRepository) LastOrderNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var orderNumber string
	err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Select("order_number").
		Where("order_number LIKE ?", prefix+"-%").
		Order("order_number DESC").
		Limit(1).
		Scan(&orderNumber).Error
	if err != nil {
		return "", err
	}
	return orderNumber, nil
}

// isOrderNumberConflict reports whether err is a unique-constraint
// violation on the order_number column. Matched textually because the
// postgres and sqlite drivers phrase the violation differently.
func isOrderNumberConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	if !strings.Contains(msg, "order_number") {
		return false
	}
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *GormSalesOrderRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "assigned_to":
			query = query.Where("assigned_to = ?", value)
		case "from_date":
			query = query.Where("created_at >= ?", value)
		case "to_date":
			query = query.Where("created_at <= ?", value)
		}
	}
	return query
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
