package persistence

import (
	"context"

	apptrade "github.com/foodworks/backoffice/internal/application/trade"
	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade TransactionScope using GORM
// transactions. Order mutations and the ledger entries kept in lockstep with
// them commit or roll back as one unit.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeTxRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeTxRepositories provides the trade repositories bound to the
// current transaction.
type gormTradeTxRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTradeTxRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// WithdrawalRepo returns the withdrawal repository scoped to the current transaction.
func (r *gormTradeTxRepositories) WithdrawalRepo() inventory.WithdrawalRepository {
	return NewGormWithdrawalRepository(r.tx)
}

// RecordRepo returns the inventory record repository scoped to the current transaction.
func (r *gormTradeTxRepositories) RecordRepo() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

// LedgerRepo returns the ledger entry repository scoped to the current transaction.
func (r *gormTradeTxRepositories) LedgerRepo() finance.LedgerEntryRepository {
	return NewGormLedgerEntryRepository(r.tx)
}

// Ensure GormTradeTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)

// Ensure gormTradeTxRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTradeTxRepositories)(nil)
