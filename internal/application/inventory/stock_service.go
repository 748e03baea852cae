package inventory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/shared"
)

// StockService handles manual stock corrections and ledger queries
type StockService struct {
	scope      TransactionScope
	ledgerRepo inventory.TransactionRepository
	logger     *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	scope TransactionScope,
	ledgerRepo inventory.TransactionRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		scope:      scope,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// CreateAdjustment applies a manual stock correction. The correction
// may take stock below zero so a miscount can always be fixed.
func (s *StockService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*TransactionResponse, error) {
	if req.Quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	var tx *inventory.Transaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		ledger := NewStockLedger(repos.ProductRepo(), repos.LedgerRepo())

		var err error
		tx, err = ledger.Apply(ctx, Adjustment{
			ProductID:     req.ProductID,
			Delta:         req.Quantity,
			Type:          inventory.TransactionTypeAdjustment,
			ActorID:       req.ActorID,
			Memo:          req.Memo,
			AllowNegative: true,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", req.ProductID.String()),
		zap.Int("quantity", req.Quantity))

	response := ToTransactionResponse(tx)
	return &response, nil
}

// GetByID retrieves a single ledger entry
func (s *StockService) GetByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// List retrieves ledger entries with filtering and pagination, newest first
func (s *StockService) List(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.FromDate != nil {
		domainFilter.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		domainFilter.Filters["to_date"] = *filter.ToDate
	}

	txs, err := s.ledgerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.ledgerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(txs), total, nil
}
