package inventory

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService covers the read and upkeep operations around records and
// batches: listing stock, adjusting thresholds and registering new batches.
type InventoryService struct {
	txScope        TransactionScope
	recordRepo     inventory.InventoryRecordRepository
	batchRepo      inventory.BatchRepository
	withdrawalRepo inventory.WithdrawalRepository
	logger         *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	txScope TransactionScope,
	recordRepo inventory.InventoryRecordRepository,
	batchRepo inventory.BatchRepository,
	withdrawalRepo inventory.WithdrawalRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		txScope:        txScope,
		recordRepo:     recordRepo,
		batchRepo:      batchRepo,
		withdrawalRepo: withdrawalRepo,
		logger:         logger,
	}
}

// ListRecords returns the inventory records of one item class
func (s *InventoryService) ListRecords(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) (*shared.Paginated[InventoryRecordResponse], error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Item type must be PRODUCT or RAW_MATERIAL")
	}

	records, err := s.recordRepo.FindAll(ctx, itemType, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.Count(ctx, itemType, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InventoryRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, NewInventoryRecordResponse(&records[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListLowStock returns records at or below their alert threshold
func (s *InventoryService) ListLowStock(ctx context.Context, filter shared.Filter) ([]InventoryRecordResponse, error) {
	records, err := s.recordRepo.FindBelowThreshold(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InventoryRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, NewInventoryRecordResponse(&records[i]))
	}
	return responses, nil
}

// GetRecord returns the inventory record for one item, creating a zeroed
// record when the item has never had stock
func (s *InventoryService) GetRecord(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) (*InventoryRecordResponse, error) {
	record, err := s.recordRepo.GetOrCreate(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}
	resp := NewInventoryRecordResponse(record)
	return &resp, nil
}

// SetThreshold changes an item's low-stock alert threshold
func (s *InventoryService) SetThreshold(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, threshold decimal.Decimal) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.RecordRepo().GetOrCreate(ctx, itemType, itemID)
		if err != nil {
			return err
		}
		if err := record.SetThreshold(threshold); err != nil {
			return err
		}
		return repos.RecordRepo().Save(ctx, record)
	})
}

// CreateBatch registers a new stock batch and adds its quantity to the
// item's cached total in the same transaction
func (s *InventoryService) CreateBatch(ctx context.Context, req CreateBatchRequest) (*BatchResponse, error) {
	itemType := inventory.ItemType(req.ItemType)
	batch, err := inventory.NewBatch(itemType, req.ItemID, req.Quantity, req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		if _, err := repos.RecordRepo().GetOrCreate(ctx, itemType, req.ItemID); err != nil {
			return err
		}
		if batch.HasStock() {
			return repos.RecordRepo().RestockAtomic(ctx, itemType, req.ItemID, req.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Batch registered",
		zap.String("item_type", itemType.String()),
		zap.String("item_id", req.ItemID.String()),
		zap.String("quantity", req.Quantity.String()),
	)

	resp := NewBatchResponse(batch)
	return &resp, nil
}

// ListBatches returns the batches of one item
func (s *InventoryService) ListBatches(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, filter shared.Filter) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByOwner(ctx, itemType, itemID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, NewBatchResponse(&batches[i]))
	}
	return responses, nil
}

// ListWithdrawals returns withdrawals matching the filter
func (s *InventoryService) ListWithdrawals(ctx context.Context, filter shared.Filter) (*shared.Paginated[WithdrawalResponse], error) {
	withdrawals, err := s.withdrawalRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.withdrawalRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]WithdrawalResponse, 0, len(withdrawals))
	for i := range withdrawals {
		responses = append(responses, NewWithdrawalResponse(&withdrawals[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}
