package inventory

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of InventoryRecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockRecordRepository) FindByItem(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, itemType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockRecordRepository) FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryRecord), args.Error(1)
}

func (m *MockRecordRepository) GetOrCreate(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID) (*inventory.InventoryRecord, error) {
	args := m.Called(ctx, itemType, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryRecord), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *inventory.InventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) DeductStock(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockRecordRepository) DeductStockFlooring(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockRecordRepository) RestockAtomic(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, itemType, itemID, quantity)
	return args.Error(0)
}

func (m *MockRecordRepository) Count(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, itemType, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBatchRepository is a mock implementation of BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByOwner(ctx context.Context, itemType inventory.ItemType, ownerItemID uuid.UUID, filter shared.Filter) ([]inventory.Batch, error) {
	args := m.Called(ctx, itemType, ownerItemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindPendingSweep(ctx context.Context, itemType inventory.ItemType, today time.Time) ([]inventory.Batch, error) {
	args := m.Called(ctx, itemType, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindExpiredWithStock(ctx context.Context, itemType inventory.ItemType, today time.Time) ([]inventory.Batch, error) {
	args := m.Called(ctx, itemType, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Count(ctx context.Context, itemType inventory.ItemType, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, itemType, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of WithdrawalRepository
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.Withdrawal, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindByItem(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, filter shared.Filter) ([]inventory.Withdrawal, error) {
	args := m.Called(ctx, itemType, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Withdrawal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ExistsExpirationForBatch(ctx context.Context, batchID uuid.UUID) (bool, error) {
	args := m.Called(ctx, batchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWithdrawalRepository) Create(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Save(ctx context.Context, withdrawal *inventory.Withdrawal) error {
	args := m.Called(ctx, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByItemAndType(ctx context.Context, itemType inventory.ItemType, itemID uuid.UUID, notifType notification.NotificationType) (*notification.Notification, error) {
	args := m.Called(ctx, itemType, itemID, notifType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, onlyUnread bool, filter shared.Filter) ([]*notification.Notification, error) {
	args := m.Called(ctx, onlyUnread, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Count(ctx context.Context, onlyUnread bool) (int64, error) {
	args := m.Called(ctx, onlyUnread)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, number int64) (*trade.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockRawMaterialRepository is a mock implementation of catalog.RawMaterialRepository
type MockRawMaterialRepository struct {
	mock.Mock
}

func (m *MockRawMaterialRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RawMaterial, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.RawMaterial), args.Error(1)
}

func (m *MockRawMaterialRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.RawMaterial, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.RawMaterial), args.Error(1)
}

func (m *MockRawMaterialRepository) Save(ctx context.Context, material *catalog.RawMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockRawMaterialRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockReconciler is a mock implementation of OrderReconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}
