package trade

import (
	"context"
	"testing"
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reconcilerFixture struct {
	orderRepo      *MockOrderRepository
	withdrawalRepo *MockWithdrawalRepository
	recordRepo     *MockRecordRepository
	ledgerRepo     *MockLedgerRepository
	productRepo    *MockProductRepository
	discountRepo   *MockDiscountRepository
	service        *ReconcilerService
}

func newReconcilerFixture() *reconcilerFixture {
	f := &reconcilerFixture{
		orderRepo:      new(MockOrderRepository),
		withdrawalRepo: new(MockWithdrawalRepository),
		recordRepo:     new(MockRecordRepository),
		ledgerRepo:     new(MockLedgerRepository),
		productRepo:    new(MockProductRepository),
		discountRepo:   new(MockDiscountRepository),
	}
	scope := NewNoOpTransactionScope(f.orderRepo, f.withdrawalRepo, f.recordRepo, f.ledgerRepo)
	pricer := NewPricer(f.productRepo, f.discountRepo)
	f.service = NewReconcilerService(scope, pricer, zap.NewNop())
	return f
}

func testOrder(t *testing.T, number int64, status trade.PaymentStatus, paid *decimal.Decimal) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(trade.ChannelOrder, "Maria", status, paid)
	require.NoError(t, err)
	order.OrderNumber = number
	return order
}

func customPricedLine(t *testing.T, orderID uuid.UUID, qty int64, price string) inventory.Withdrawal {
	t.Helper()
	line, err := inventory.NewOrderLine(uuid.New(), decimal.NewFromInt(qty), orderID,
		inventory.LinePricing{CustomPrice: decimalPtr(decimal.RequireFromString(price))}, time.Now())
	require.NoError(t, err)
	return *line
}

func TestReconcilerServiceReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the sales entry for a paid order", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 17, trade.PaymentPaid, nil)
		lines := []inventory.Withdrawal{customPricedLine(t, order.ID, 2, "200.00")}

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(nil, shared.ErrNotFound)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return(lines, nil)
		f.ledgerRepo.On("Save", ctx, mock.MatchedBy(func(e *finance.LedgerEntry) bool {
			return e.Kind == finance.KindSales &&
				e.OrderID != nil && *e.OrderID == order.ID &&
				e.Amount.Equals(valueobject.NewMoneyPHPFromFloat(200)) &&
				e.Description == "Order #17 payment"
		})).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("a partial order records the paid amount verbatim", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 8, trade.PaymentPartial, decimalPtr(decimal.NewFromInt(300)))
		// The line would total 500; the partial entry must ignore it.
		lines := []inventory.Withdrawal{customPricedLine(t, order.ID, 1, "500.00")}

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(nil, shared.ErrNotFound)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return(lines, nil)
		f.ledgerRepo.On("Save", ctx, mock.MatchedBy(func(e *finance.LedgerEntry) bool {
			return e.Amount.Equals(valueobject.NewMoneyPHPFromFloat(300)) &&
				e.Description == "Order #8 partial payment"
		})).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertExpectations(t)
	})

	t.Run("an unpaid order keeps no ledger entry", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 9, trade.PaymentUnpaid, nil)
		existing := finance.NewSalesEntryForOrder(order.ID, valueobject.NewMoneyPHPFromFloat(120), time.Now(), "Order #9 payment")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(existing, nil)
		f.ledgerRepo.On("DeleteByOrderID", ctx, order.ID).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertCalled(t, "DeleteByOrderID", ctx, order.ID)
	})

	t.Run("an unpaid order with no entry is a no-op", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 10, trade.PaymentUnpaid, nil)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(nil, shared.ErrNotFound)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.ledgerRepo.AssertNotCalled(t, "DeleteByOrderID", mock.Anything, mock.Anything)
	})

	t.Run("settling a partial rewrites the entry with the full total", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 21, trade.PaymentPaid, nil)
		lines := []inventory.Withdrawal{customPricedLine(t, order.ID, 1, "500.00")}
		existing := finance.NewSalesEntryForOrder(order.ID, valueobject.NewMoneyPHPFromFloat(300), time.Now(), "Order #21 partial payment")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(existing, nil)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return(lines, nil)
		f.ledgerRepo.On("Save", ctx, existing).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		assert.True(t, existing.Amount.Equals(valueobject.NewMoneyPHPFromFloat(500)))
		assert.Equal(t, "Order #21 payment: 300.00 + 200.00", existing.Description)
	})

	t.Run("deleting the last line of a partially paid order removes its entry", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 23, trade.PaymentPartial, decimalPtr(decimal.NewFromInt(200)))
		existing := finance.NewSalesEntryForOrder(order.ID, valueobject.NewMoneyPHPFromFloat(200), time.Now(), "Order #23 partial payment")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(existing, nil)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return([]inventory.Withdrawal{}, nil)
		f.ledgerRepo.On("DeleteByOrderID", ctx, order.ID).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertCalled(t, "DeleteByOrderID", ctx, order.ID)
		f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("an order stripped of all lines loses its entry", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 25, trade.PaymentPaid, nil)
		existing := finance.NewSalesEntryForOrder(order.ID, valueobject.NewMoneyPHPFromFloat(90), time.Now(), "Order #25 payment")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(existing, nil)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return([]inventory.Withdrawal{}, nil)
		f.ledgerRepo.On("DeleteByOrderID", ctx, order.ID).Return(nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertCalled(t, "DeleteByOrderID", ctx, order.ID)
	})

	t.Run("reconciling an already settled order changes nothing", func(t *testing.T) {
		f := newReconcilerFixture()
		order := testOrder(t, 30, trade.PaymentPaid, nil)
		lines := []inventory.Withdrawal{customPricedLine(t, order.ID, 1, "250.00")}
		existing := finance.NewSalesEntryForOrder(order.ID, valueobject.NewMoneyPHPFromFloat(250), time.Now(), "Order #30 payment")

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.ledgerRepo.On("FindByOrderID", ctx, order.ID).Return(existing, nil)
		f.withdrawalRepo.On("FindByOrder", ctx, order.ID).Return(lines, nil)

		err := f.service.Reconcile(ctx, order.ID)

		require.NoError(t, err)
		f.ledgerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
