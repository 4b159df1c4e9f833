package persistence

import (
	"context"
	"testing"
	"time"

	appinv "github.com/foodworks/backoffice/internal/application/inventory"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The sweep and the backlog repair are exercised here against a real
// database so the SQL-level guarantees (the floored decrement, the
// per-batch withdrawal provenance) are covered end to end.

func newSweepServices(db *gorm.DB) (*appinv.SweepService, *appinv.BacklogService) {
	scope := NewGormInventoryTransactionScope(db)
	sweeper := appinv.NewSweepService(scope,
		NewGormProductRepository(db),
		NewGormRawMaterialRepository(db),
		zap.NewNop(),
	)
	backlog := appinv.NewBacklogService(scope, sweeper, zap.NewNop())
	return sweeper, backlog
}

func seedStock(t *testing.T, db *gorm.DB, itemType inventory.ItemType, itemID uuid.UUID, stock int64) {
	t.Helper()
	record, err := inventory.NewInventoryRecord(itemType, itemID)
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, record.Restock(decimal.NewFromInt(stock)))
	}
	require.NoError(t, NewGormInventoryRecordRepository(db).Save(context.Background(), record))
}

func seedBatch(t *testing.T, db *gorm.DB, itemType inventory.ItemType, itemID uuid.UUID, qty int64, expiry time.Time) *inventory.Batch {
	t.Helper()
	batch, err := inventory.NewBatch(itemType, itemID, decimal.NewFromInt(qty), &expiry)
	require.NoError(t, err)
	require.NoError(t, NewGormBatchRepository(db).Save(context.Background(), batch))
	return batch
}

func countExpiredWithdrawals(t *testing.T, db *gorm.DB, itemID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&inventory.Withdrawal{}).
		Where("item_id = ? AND reason = ?", itemID, inventory.ReasonExpired).
		Count(&count).Error)
	return count
}

func TestSweepFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("floors the stock at zero when the batch exceeds it", func(t *testing.T) {
		db := newTestDB(t)
		sweeper, _ := newSweepServices(db)
		itemID := uuid.New()
		day := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

		seedStock(t, db, inventory.ItemTypeProduct, itemID, 5)
		seedBatch(t, db, inventory.ItemTypeProduct, itemID, 10, day.AddDate(0, 0, -1))

		stats, err := sweeper.Sweep(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Classes[0].BatchesDeducted)

		record, err := NewGormInventoryRecordRepository(db).FindByItem(ctx, inventory.ItemTypeProduct, itemID)
		require.NoError(t, err)
		assert.True(t, record.TotalStock.IsZero(), "stock went to %s, want 0", record.TotalStock)
		assert.Equal(t, int64(1), countExpiredWithdrawals(t, db, itemID))
	})

	t.Run("repair does not deduct again after a late sweep", func(t *testing.T) {
		db := newTestDB(t)
		sweeper, backlog := newSweepServices(db)
		itemID := uuid.New()
		expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		sweepDay := expiry.AddDate(0, 0, 3)

		seedStock(t, db, inventory.ItemTypeProduct, itemID, 15)
		batch := seedBatch(t, db, inventory.ItemTypeProduct, itemID, 5, expiry)

		// The system was down over the expiration date; the sweep runs
		// three days late and dates its withdrawal on the sweep day.
		_, err := sweeper.Sweep(ctx, sweepDay)
		require.NoError(t, err)

		repoRecord := NewGormInventoryRecordRepository(db)
		record, err := repoRecord.FindByItem(ctx, inventory.ItemTypeProduct, itemID)
		require.NoError(t, err)
		require.True(t, record.TotalStock.Equal(decimal.NewFromInt(10)))

		stats, err := backlog.Repair(ctx, sweepDay)
		require.NoError(t, err)
		assert.Zero(t, stats.BatchesRepaired)
		assert.Equal(t, 1, stats.BatchesSkipped)

		record, err = repoRecord.FindByItem(ctx, inventory.ItemTypeProduct, itemID)
		require.NoError(t, err)
		assert.True(t, record.TotalStock.Equal(decimal.NewFromInt(10)), "stock is %s, want 10", record.TotalStock)
		assert.Equal(t, int64(1), countExpiredWithdrawals(t, db, itemID))

		archived, err := NewGormBatchRepository(db).FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.True(t, archived.IsArchived)
		assert.True(t, archived.Quantity.IsZero())
	})

	t.Run("repair settles a batch the sweep never recorded", func(t *testing.T) {
		db := newTestDB(t)
		_, backlog := newSweepServices(db)
		itemID := uuid.New()
		expiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
		day := expiry.AddDate(0, 0, 7)

		seedStock(t, db, inventory.ItemTypeRawMaterial, itemID, 20)
		batch := seedBatch(t, db, inventory.ItemTypeRawMaterial, itemID, 6, expiry)
		// A crash between marking and deducting leaves the batch marked
		// with its quantity intact and no withdrawal behind.
		batch.MarkExpired()
		require.NoError(t, NewGormBatchRepository(db).Save(ctx, batch))

		stats, err := backlog.Repair(ctx, day)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.BatchesRepaired)

		record, err := NewGormInventoryRecordRepository(db).FindByItem(ctx, inventory.ItemTypeRawMaterial, itemID)
		require.NoError(t, err)
		assert.True(t, record.TotalStock.Equal(decimal.NewFromInt(14)))
		assert.Equal(t, int64(1), countExpiredWithdrawals(t, db, itemID))
	})
}
