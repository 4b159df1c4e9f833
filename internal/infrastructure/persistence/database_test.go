package persistence

import (
	"testing"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the tables the
// repository tests touch. Orders are excluded because their sequential
// number column relies on a PostgreSQL sequence.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&inventory.InventoryRecord{},
		&inventory.Batch{},
		&inventory.Withdrawal{},
		&finance.LedgerEntry{},
		&notification.Notification{},
	))
	return db
}
