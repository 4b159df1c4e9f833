package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLedgerEntryRepository_OrderLinkage(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	entry := finance.NewSalesEntryForOrder(orderID, valueobject.NewMoneyPHP(decimal.NewFromFloat(350.50)), date, "Order #7 payment")
	require.NoError(t, repo.Save(ctx, entry))

	t.Run("finds the entry for its order", func(t *testing.T) {
		found, err := repo.FindByOrderID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
		assert.True(t, found.Amount.Amount().Equal(decimal.NewFromFloat(350.50)))
		assert.True(t, found.IsReconciled())
	})

	t.Run("not found for an order without an entry", func(t *testing.T) {
		_, err := repo.FindByOrderID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete by order removes only that entry", func(t *testing.T) {
		manual, err := finance.NewLedgerEntry(finance.KindExpense, "Packaging", valueobject.NewMoneyPHP(decimal.NewFromInt(120)), date, "Cartons")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, manual))

		require.NoError(t, repo.DeleteByOrderID(ctx, orderID))

		_, err = repo.FindByOrderID(ctx, orderID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		kept, err := repo.FindByID(ctx, manual.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.KindExpense, kept.Kind)
	})

	t.Run("delete by order is a no-op without an entry", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByOrderID(ctx, uuid.New()))
	})
}

func TestGormLedgerEntryRepository_FindByDateRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLedgerEntryRepository(db)
	ctx := context.Background()

	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	inRange, err := finance.NewLedgerEntry(finance.KindSales, "Sales", valueobject.NewMoneyPHP(decimal.NewFromInt(500)), march, "Walk-in")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, inRange))

	outOfRange, err := finance.NewLedgerEntry(finance.KindSales, "Sales", valueobject.NewMoneyPHP(decimal.NewFromInt(900)), april, "Walk-in")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, outOfRange))

	entries, err := repo.FindByDateRange(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		shared.DefaultFilter(),
	)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inRange.ID, entries[0].ID)
}
