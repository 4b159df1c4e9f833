package inventory

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// inventory flows mutate together. When a function is executed within a
// transaction scope, all repository operations will be part of the same
// database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// The expiration sweep writes batches, inventory records, withdrawals and
// notifications in one unit; withdrawal submission writes orders, withdrawals
// and inventory records. Both go through this scope.
type TransactionalRepositories interface {
	// RecordRepo returns the inventory record repository scoped to the current transaction
	RecordRepo() inventory.InventoryRecordRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
	// WithdrawalRepo returns the withdrawal repository scoped to the current transaction
	WithdrawalRepo() inventory.WithdrawalRepository
	// NotificationRepo returns the notification repository scoped to the current transaction
	NotificationRepo() notification.NotificationRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	recordRepo       inventory.InventoryRecordRepository
	batchRepo        inventory.BatchRepository
	withdrawalRepo   inventory.WithdrawalRepository
	notificationRepo notification.NotificationRepository
	orderRepo        trade.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	recordRepo inventory.InventoryRecordRepository,
	batchRepo inventory.BatchRepository,
	withdrawalRepo inventory.WithdrawalRepository,
	notificationRepo notification.NotificationRepository,
	orderRepo trade.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo:       recordRepo,
		batchRepo:        batchRepo,
		withdrawalRepo:   withdrawalRepo,
		notificationRepo: notificationRepo,
		orderRepo:        orderRepo,
	}
}

// Execute runs the function with the repositories as-is, without a transaction.
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// RecordRepo returns the inventory record repository
func (s *NoOpTransactionScope) RecordRepo() inventory.InventoryRecordRepository {
	return s.recordRepo
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

// WithdrawalRepo returns the withdrawal repository
func (s *NoOpTransactionScope) WithdrawalRepo() inventory.WithdrawalRepository {
	return s.withdrawalRepo
}

// NotificationRepo returns the notification repository
func (s *NoOpTransactionScope) NotificationRepo() notification.NotificationRepository {
	return s.notificationRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}
