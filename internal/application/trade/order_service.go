package trade

import (
	"context"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService maintains orders after submission: payment updates, line
// edits, and deletion. Every mutation adjusts the cached stock totals by the
// exact delta it causes and settles the order's ledger entry in the same
// transaction, so lines, payment state and the sales book never drift apart.
type OrderService struct {
	txScope    TransactionScope
	orderRepo  trade.OrderRepository
	pricer     *Pricer
	reconciler *ReconcilerService
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo trade.OrderRepository,
	pricer *Pricer,
	reconciler *ReconcilerService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:    txScope,
		orderRepo:  orderRepo,
		pricer:     pricer,
		reconciler: reconciler,
		logger:     logger,
	}
}

// GetOrder returns one order with its lines and derived total
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetailResponse, error) {
	var detail *OrderDetailResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		lines, err := repos.WithdrawalRepo().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		// A partially paid order is worth what was actually handed over,
		// not what the lines would compute to.
		var total decimal.Decimal
		if order.PaymentStatus == trade.PaymentPartial && order.PaidAmount != nil {
			total = *order.PaidAmount
		} else {
			money, err := s.pricer.ComputeOrderTotal(ctx, lines)
			if err != nil {
				return err
			}
			total = money.Amount()
		}

		lineResponses := make([]OrderLineResponse, 0, len(lines))
		for i := range lines {
			lineResponses = append(lineResponses, NewOrderLineResponse(&lines[i]))
		}
		detail = &OrderDetailResponse{
			OrderResponse: NewOrderResponse(order),
			Lines:         lineResponses,
			Total:         total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ListOrders returns orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, NewOrderResponse(order))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdatePayment changes the order's payment state and settles its ledger
// entry in the same transaction
func (s *OrderService) UpdatePayment(ctx context.Context, orderID uuid.UUID, req UpdatePaymentRequest) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.UpdatePayment(trade.PaymentStatus(req.Status), req.Amount); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		return s.reconciler.reconcileWithin(ctx, repos, orderID)
	})
}

// UpdateLine edits one order line. Growing the quantity claims the extra
// stock through the guarded decrement; shrinking it returns the difference.
func (s *OrderService) UpdateLine(ctx context.Context, orderID, lineID uuid.UUID, req UpdateLineRequest) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		line, err := repos.WithdrawalRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if !line.BelongsToOrder(orderID) {
			return shared.ErrNotFound
		}

		if req.Quantity != nil {
			delta, err := line.UpdateQuantity(*req.Quantity)
			if err != nil {
				return err
			}
			if err := s.adjustStock(ctx, repos, line, delta); err != nil {
				return err
			}
		}

		if req.HasPricing() {
			pricing := inventory.LinePricing{
				CustomPrice:           req.CustomPrice,
				DiscountID:            req.DiscountID,
				CustomDiscountPercent: req.CustomDiscountPercent,
			}
			if req.PriceType != nil {
				priceType := inventory.PriceType(*req.PriceType)
				pricing.PriceType = &priceType
			}
			if err := line.UpdatePricing(pricing); err != nil {
				return err
			}
		}

		if err := repos.WithdrawalRepo().Save(ctx, line); err != nil {
			return err
		}
		return s.reconciler.reconcileWithin(ctx, repos, orderID)
	})
}

// DeleteLine removes one line from an order and returns its stock
func (s *OrderService) DeleteLine(ctx context.Context, orderID, lineID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		line, err := repos.WithdrawalRepo().FindByID(ctx, lineID)
		if err != nil {
			return err
		}
		if !line.BelongsToOrder(orderID) {
			return shared.ErrNotFound
		}

		if err := repos.RecordRepo().RestockAtomic(ctx, line.ItemType, line.ItemID, line.Quantity); err != nil {
			return err
		}
		line.Archive()
		if err := repos.WithdrawalRepo().Save(ctx, line); err != nil {
			return err
		}
		return s.reconciler.reconcileWithin(ctx, repos, orderID)
	})
}

// DeleteOrder removes an order: every line's stock is returned, the lines
// and the order are archived, and the order's ledger entry is deleted.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		lines, err := repos.WithdrawalRepo().FindByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		for i := range lines {
			line := &lines[i]
			if err := repos.RecordRepo().RestockAtomic(ctx, line.ItemType, line.ItemID, line.Quantity); err != nil {
				return err
			}
			line.Archive()
			if err := repos.WithdrawalRepo().Save(ctx, line); err != nil {
				return err
			}
		}

		if err := repos.LedgerRepo().DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}

		order.Archive()
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		s.logger.Info("Order deleted",
			zap.Int64("order_number", order.OrderNumber),
			zap.Int("lines_returned", len(lines)),
		)
		return nil
	})
}

// adjustStock applies a signed quantity delta to the line's item
func (s *OrderService) adjustStock(ctx context.Context, repos TransactionalRepositories, line *inventory.Withdrawal, delta decimal.Decimal) error {
	switch {
	case delta.GreaterThan(decimal.Zero):
		return repos.RecordRepo().DeductStock(ctx, line.ItemType, line.ItemID, delta)
	case delta.LessThan(decimal.Zero):
		return repos.RecordRepo().RestockAtomic(ctx, line.ItemType, line.ItemID, delta.Neg())
	}
	return nil
}
