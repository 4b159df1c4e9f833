package inventory

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BacklogService repairs batches the sweep missed: already-expired batches
// that still hold stock because the system was down past their expiration
// date, or because historical data predates the sweep. Repair deducts what
// the sweep would have deducted, back-dating the withdrawal to the batch's
// expiration date, then zeroes and archives the batch so it never surfaces
// again.
type BacklogService struct {
	txScope TransactionScope
	sweeper *SweepService
	logger  *zap.Logger
}

// NewBacklogService creates a new BacklogService
func NewBacklogService(txScope TransactionScope, sweeper *SweepService, logger *zap.Logger) *BacklogService {
	return &BacklogService{
		txScope: txScope,
		sweeper: sweeper,
		logger:  logger,
	}
}

// RepairStats holds the result of one backlog repair run
type RepairStats struct {
	BatchesRepaired int             `json:"batches_repaired"`
	BatchesSkipped  int             `json:"batches_skipped"`
	TotalDeducted   decimal.Decimal `json:"total_deducted"`
	ProcessedAt     time.Time       `json:"processed_at"`
}

// Repair scans for expired batches with leftover stock and settles them.
// Each item class runs in its own transaction, mirroring the sweep.
func (s *BacklogService) Repair(ctx context.Context, today time.Time) (*RepairStats, error) {
	day := truncateToDay(today)
	stats := &RepairStats{
		TotalDeducted: decimal.Zero,
		ProcessedAt:   time.Now(),
	}

	for _, itemType := range inventory.AllItemTypes() {
		if err := s.repairClass(ctx, itemType, day, stats); err != nil {
			s.logger.Error("Backlog repair failed for item class",
				zap.String("item_type", itemType.String()),
				zap.Error(err),
			)
			return stats, err
		}
	}

	s.logger.Info("Backlog repair completed",
		zap.Int("repaired", stats.BatchesRepaired),
		zap.Int("skipped", stats.BatchesSkipped),
		zap.String("total_deducted", stats.TotalDeducted.String()),
	)
	return stats, nil
}

func (s *BacklogService) repairClass(ctx context.Context, itemType inventory.ItemType, day time.Time, stats *RepairStats) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.BatchRepo().FindExpiredWithStock(ctx, itemType, day)
		if err != nil {
			return err
		}

		for i := range batches {
			batch := &batches[i]
			qty := batch.Quantity

			expiredOn := day
			if batch.ExpirationDate != nil {
				expiredOn = truncateToDay(*batch.ExpirationDate)
			}

			// An EXPIRED withdrawal referencing the batch means the
			// deduction already happened and only the batch row was
			// left dangling. The check is by batch ID, so a sweep that
			// ran days after the expiration date still counts.
			recorded, err := repos.WithdrawalRepo().ExistsExpirationForBatch(ctx, batch.ID)
			if err != nil {
				return err
			}

			if recorded {
				stats.BatchesSkipped++
			} else {
				if err := s.sweeper.deductExpired(ctx, repos, batch, qty, expiredOn); err != nil {
					return err
				}
				if err := s.sweeper.raiseExpirationAlert(ctx, repos, batch); err != nil {
					return err
				}
				stats.BatchesRepaired++
				stats.TotalDeducted = stats.TotalDeducted.Add(qty)
			}

			batch.ZeroAndArchive()
			if err := repos.BatchRepo().Save(ctx, batch); err != nil {
				return err
			}
		}
		return nil
	})
}
