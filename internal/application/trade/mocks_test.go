package trade

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/catalog"
	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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

// MockLedgerRepository is a mock implementation of LedgerEntryRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*finance.LedgerEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*finance.LedgerEntry, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*finance.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*finance.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Save(ctx context.Context, entry *finance.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockLedgerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
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

// MockDiscountRepository is a mock implementation of catalog.DiscountRepository
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Discount), args.Error(1)
}

func (m *MockDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Discount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Discount), args.Error(1)
}

func (m *MockDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	args := m.Called(ctx, discount)
	return args.Error(0)
}
