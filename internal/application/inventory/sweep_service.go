package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SweepService converts expired batches into inventory deductions. A run is
// stateless and idempotent: each batch is marked expired exactly once, the
// deduction and EXPIRED withdrawal happen in the same transaction as the mark,
// and a second run over the same day finds nothing left to process.
type SweepService struct {
	txScope      TransactionScope
	productRepo  catalog.ProductRepository
	materialRepo catalog.RawMaterialRepository
	logger       *zap.Logger
}

// NewSweepService creates a new SweepService
func NewSweepService(
	txScope TransactionScope,
	productRepo catalog.ProductRepository,
	materialRepo catalog.RawMaterialRepository,
	logger *zap.Logger,
) *SweepService {
	return &SweepService{
		txScope:      txScope,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		logger:       logger,
	}
}

// ClassSweepStats holds the result of sweeping one item class
type ClassSweepStats struct {
	ItemType        inventory.ItemType `json:"item_type"`
	BatchesMarked   int                `json:"batches_marked"`
	BatchesDeducted int                `json:"batches_deducted"`
	BatchesAlerted  int                `json:"batches_alerted"`
	TotalDeducted   decimal.Decimal    `json:"total_deducted"`
	Error           string             `json:"error,omitempty"`
}

// SweepStats holds the result of one full sweep run
type SweepStats struct {
	Date        time.Time         `json:"date"`
	Classes     []ClassSweepStats `json:"classes"`
	ProcessedAt time.Time         `json:"processed_at"`
}

// Sweep processes all batches whose expiration date has passed as of today.
// Each item class runs in its own transaction: a failure in one class rolls
// that class back and is reported in the stats without blocking the other.
func (s *SweepService) Sweep(ctx context.Context, today time.Time) (*SweepStats, error) {
	day := truncateToDay(today)
	stats := &SweepStats{
		Date:        day,
		ProcessedAt: time.Now(),
	}

	for _, itemType := range inventory.AllItemTypes() {
		classStats := s.sweepClass(ctx, itemType, day)
		if classStats.Error != "" {
			s.logger.Error("Expiration sweep failed for item class",
				zap.String("item_type", itemType.String()),
				zap.String("error", classStats.Error),
			)
		} else if classStats.BatchesMarked > 0 {
			s.logger.Info("Expiration sweep processed item class",
				zap.String("item_type", itemType.String()),
				zap.Int("batches_marked", classStats.BatchesMarked),
				zap.Int("batches_deducted", classStats.BatchesDeducted),
				zap.String("total_deducted", classStats.TotalDeducted.String()),
			)
		}
		stats.Classes = append(stats.Classes, classStats)
	}

	return stats, nil
}

// sweepClass sweeps one item class inside a single transaction
func (s *SweepService) sweepClass(ctx context.Context, itemType inventory.ItemType, day time.Time) ClassSweepStats {
	classStats := ClassSweepStats{
		ItemType:      itemType,
		TotalDeducted: decimal.Zero,
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.BatchRepo().FindPendingSweep(ctx, itemType, day)
		if err != nil {
			return err
		}

		for i := range batches {
			batch := &batches[i]

			// Marking comes before any deduction so a crash between
			// the two can only under-deduct, never double-deduct.
			qty := batch.MarkExpired()
			if err := repos.BatchRepo().Save(ctx, batch); err != nil {
				return err
			}
			classStats.BatchesMarked++

			// Batches already emptied by sales are only marked.
			if !qty.GreaterThan(decimal.Zero) {
				continue
			}

			if err := s.deductExpired(ctx, repos, batch, qty, day); err != nil {
				return err
			}
			classStats.BatchesDeducted++
			classStats.TotalDeducted = classStats.TotalDeducted.Add(qty)

			if err := s.raiseExpirationAlert(ctx, repos, batch); err != nil {
				return err
			}
			classStats.BatchesAlerted++
		}
		return nil
	})
	if err != nil {
		classStats.Error = err.Error()
		// A rolled-back class reports nothing as processed.
		classStats.BatchesMarked = 0
		classStats.BatchesDeducted = 0
		classStats.BatchesAlerted = 0
		classStats.TotalDeducted = decimal.Zero
	}

	return classStats
}

// deductExpired removes the batch quantity from the cached total, flooring at
// zero, and records the EXPIRED withdrawal. The deduction is a single SQL
// update so concurrent sales against the same record cannot lose either
// write. Low stock crossed on the way down raises its own alert.
func (s *SweepService) deductExpired(ctx context.Context, repos TransactionalRepositories, batch *inventory.Batch, qty decimal.Decimal, day time.Time) error {
	if _, err := repos.RecordRepo().GetOrCreate(ctx, batch.ItemType, batch.OwnerItemID); err != nil {
		return err
	}
	if err := repos.RecordRepo().DeductStockFlooring(ctx, batch.ItemType, batch.OwnerItemID, qty); err != nil {
		return err
	}

	withdrawal, err := inventory.NewExpirationWithdrawal(batch, qty, day)
	if err != nil {
		return err
	}
	if err := repos.WithdrawalRepo().Create(ctx, withdrawal); err != nil {
		return err
	}

	record, err := repos.RecordRepo().FindByItem(ctx, batch.ItemType, batch.OwnerItemID)
	if err != nil {
		return err
	}
	if record.IsBelowThreshold() {
		message := fmt.Sprintf("%s is low on stock: %s remaining", s.itemName(ctx, batch.ItemType, batch.OwnerItemID), record.TotalStock.String())
		if err := upsertNotification(ctx, repos.NotificationRepo(), batch.ItemType, batch.OwnerItemID, notification.TypeLowStock, message); err != nil {
			return err
		}
	}
	return nil
}

// raiseExpirationAlert gets or creates the single EXPIRATION_ALERT
// notification for a batch
func (s *SweepService) raiseExpirationAlert(ctx context.Context, repos TransactionalRepositories, batch *inventory.Batch) error {
	message := fmt.Sprintf("A batch of %s expired and was removed from stock", s.itemName(ctx, batch.ItemType, batch.OwnerItemID))
	return upsertNotification(ctx, repos.NotificationRepo(), batch.ItemType, batch.ID, notification.TypeExpirationAlert, message)
}

// itemName resolves a display name for notifications, falling back to the raw
// ID when the catalog row is missing
func (s *SweepService) itemName(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) string {
	switch itemType {
	case inventory.ItemTypeProduct:
		if product, err := s.productRepo.FindByID(ctx, itemID); err == nil {
			return product.Name
		}
	case inventory.ItemTypeRawMaterial:
		if material, err := s.materialRepo.FindByID(ctx, itemID); err == nil {
			return material.Name
		}
	}
	return itemID.String()
}

// upsertNotification refreshes the existing notification for the exact
// (item type, item, type) triple or creates it when absent
func upsertNotification(ctx context.Context, repo notification.NotificationRepository, itemType inventory.ItemType, itemID uuid.UUID, notifType notification.NotificationType, message string) error {
	existing, err := repo.FindByItemAndType(ctx, itemType, itemID, notifType)
	switch {
	case err == nil:
		existing.Touch(message)
		return repo.Save(ctx, existing)
	case err == shared.ErrNotFound:
		created, err := notification.NewNotification(itemType, itemID, notifType, message)
		if err != nil {
			return err
		}
		return repo.Save(ctx, created)
	default:
		return err
	}
}

// truncateToDay drops the time-of-day component
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
