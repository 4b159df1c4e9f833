package persistence

import (
	"context"

	appinv "github.com/foodworks/backoffice/internal/application/inventory"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions. Each Execute call runs the sweep or withdrawal
// mutations against repositories bound to one shared transaction.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope.
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormInventoryTxRepositories{tx: tx}
		return fn(repos)
	})
}

// gormInventoryTxRepositories provides the inventory repositories bound to
// the current transaction.
type gormInventoryTxRepositories struct {
	tx *gorm.DB
}

// RecordRepo returns the inventory record repository scoped to the current transaction.
func (r *gormInventoryTxRepositories) RecordRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

// BatchRepo returns the batch repository scoped to the current transaction.
func (r *gormInventoryTxRepositories) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction.
func (r *gormInventoryTxRepositories) WithdrawalRepo() inventory.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

// NotificationRepo returns the notification repository scoped to the current transaction.
func (r *gormInventoryTxRepositories) NotificationRepo() notification.NotificationRepository {
	return NewGormNotificationRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormInventoryTxRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Ensure GormInventoryTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)

// Ensure gormInventoryTxRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormInventoryTxRepositories)(nil)
