package trade

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories order
// maintenance touches together: the order itself, its withdrawal lines, the
// cached stock totals they adjust, and the sales ledger entry kept in
// lockstep with them.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
	// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
	WithdrawalRepo() inventory.WithdrawalRepository
	// RecordRepo returns the inventory record repository scoped to the current transaction
	RecordRepo() inventory.InventoryRecordRepository
	// LedgerRepo returns the ledger entry repository scoped to the current transaction
	LedgerRepo() finance.LedgerEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	orderRepo      trade.OrderRepository
	withdrawalRepo inventory.WithdrawalRepository
	recordRepo     inventory.InventoryRecordRepository
	ledgerRepo     finance.LedgerEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	withdrawalRepo inventory.WithdrawalRepository,
	recordRepo inventory.InventoryRecordRepository,
	ledgerRepo finance.LedgerEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		withdrawalRepo: withdrawalRepo,
		recordRepo:     recordRepo,
		ledgerRepo:     ledgerRepo,
	}
}

// Execute runs the function with the repositories as-is, without a transaction.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// WithdrawalRepo returns the withdrawal repository
func (s *NoOpTransactionScope) WithdrawalRepo() inventory.WithdrawalRepository {
	return s.withdrawalRepo
}

// RecordRepo returns the inventory record repository
func (s *NoOpTransactionScope) RecordRepo() inventory.InventoryRecordRepository {
	return s.recordRepo
}

// LedgerRepo returns the ledger entry repository
func (s *NoOpTransactionScope) LedgerRepo() finance.LedgerEntryRepository {
	return s.ledgerRepo
}
