package inventory

import (
	"context"
	"fmt"

	"github.com/foodworks/backoffice/internal/domain/inventory"
	"github.com/foodworks/backoffice/internal/domain/notification"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderReconciler brings the sales ledger in line with an order after its
// lines or payment state changed
type OrderReconciler interface {
	Reconcile(ctx context.Context, orderID uuid.UUID) error
}

// WithdrawalService handles multi-line stock withdrawal submissions. Lines
// are processed independently: each line's guarded stock decrement and
// withdrawal insert commit together, and one line's rejection never rolls
// back another's. A SOLD submission with a sales channel opens an order
// first and attaches the surviving lines to it.
type WithdrawalService struct {
	txScope    TransactionScope
	reconciler OrderReconciler
	logger     *zap.Logger
}

// NewWithdrawalService creates a new WithdrawalService
func NewWithdrawalService(txScope TransactionScope, reconciler OrderReconciler, logger *zap.Logger) *WithdrawalService {
	return &WithdrawalService{
		txScope:    txScope,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Submit processes a withdrawal submission and reports per-line outcomes
func (s *WithdrawalService) Submit(ctx context.Context, req SubmitWithdrawalRequest) (*SubmitWithdrawalResult, error) {
	reason := inventory.WithdrawalReason(req.Reason)
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Withdrawal reason is not valid")
	}

	result := &SubmitWithdrawalResult{}

	var order *trade.Order
	if reason == inventory.ReasonSold && req.Channel != nil {
		created, err := s.createOrder(ctx, req)
		if err != nil {
			return nil, err
		}
		order = created
		result.OrderID = &order.ID
		result.OrderNumber = &order.OrderNumber
	}

	for _, line := range req.Lines {
		lineResult := s.submitLine(ctx, reason, req, line, order)
		if lineResult.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Lines = append(result.Lines, lineResult)
	}

	if order != nil {
		if result.Succeeded == 0 {
			// Nothing attached to the order; close it out instead of
			// leaving an empty shell behind.
			s.archiveEmptyOrder(ctx, order)
			result.OrderID = nil
			result.OrderNumber = nil
		} else if order.PaymentStatus != trade.PaymentUnpaid {
			// Ledger reconciliation runs after the lines committed; a
			// failure here leaves the stock movements in place and is
			// repaired by the next reconcile of the same order.
			if err := s.reconciler.Reconcile(ctx, order.ID); err != nil {
				s.logger.Error("Order reconciliation failed after withdrawal submission",
					zap.String("order_id", order.ID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return result, nil
}

// createOrder opens the order the sold lines attach to
func (s *WithdrawalService) createOrder(ctx context.Context, req SubmitWithdrawalRequest) (*trade.Order, error) {
	channel := trade.SalesChannel(*req.Channel)
	status := trade.PaymentUnpaid
	if req.PaymentStatus != nil {
		status = trade.PaymentStatus(*req.PaymentStatus)
	}

	order, err := trade.NewOrder(channel, req.CustomerName, status, req.PaidAmount)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

/// submitLine commits one line: guarded decrement plus withdrawal insert in a
// single transaction
func (s *WithdrawalService) submitLine(ctx context.Context, reason inventory.WithdrawalReason, req SubmitWithdrawalRequest, line WithdrawalLineInput, order *trade.Order) WithdrawalLineResult {
	lineResult := WithdrawalLineResult{ItemID: line.ItemID}

	itemType := inventory.ItemType(line.ItemType)
	withdrawal, err := s.buildWithdrawal(reason, req, line, itemType, order)
	if err != nil {
		lineResult.Error = err.Error()
		return lineResult
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.RecordRepo().DeductStock(ctx, itemType, line.ItemID, line.Quantity); err != nil {
			return err
		}
		if err := repos.WithdrawalRepo().Create(ctx, withdrawal); err != nil {
			return err
		}
		return s.alertIfLow(ctx, repos, itemType, line.ItemID)
	})
	if err != nil {
		lineResult.Error = err.Error()
		return lineResult
	}

	lineResult.WithdrawalID = &withdrawal.ID
	lineResult.Success = true
	return lineResult
}

// buildWithdrawal constructs the domain withdrawal for a line before any
// stock is touched
func (s *WithdrawalService) buildWithdrawal(reason inventory.WithdrawalReason, req SubmitWithdrawalRequest, line WithdrawalLineInput, itemType inventory.ItemType, order *trade.Order) (*inventory.Withdrawal, error) {
	if order != nil {
		// Order lines carry ItemType PRODUCT, so the stock decrement
		// must target a product too or the withdrawal and the record
		// would book against different items.
		if itemType != inventory.ItemTypeProduct {
			return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Order lines can only sell products")
		}
		pricing := inventory.LinePricing{
			CustomPrice:           line.CustomPrice,
			DiscountID:            line.DiscountID,
			CustomDiscountPercent: line.CustomDiscountPercent,
		}
		if line.PriceType != nil {
			priceType := inventory.PriceType(*line.PriceType)
			pricing.PriceType = &priceType
		}
		return inventory.NewOrderLine(line.ItemID, line.Quantity, order.ID, pricing, req.Date)
	}
	return inventory.NewWithdrawal(itemType, line.ItemID, line.Quantity, reason, req.Date)
}

// alertIfLow raises the LOW_STOCK notification when the decrement crossed
// the item's threshold
func (s *WithdrawalService) alertIfLow(ctx context.Context, repos TransactionalRepositories, itemType inventory.ItemType, itemID uuid.UUID) error {
	record, err := repos.RecordRepo().FindByItem(ctx, itemType, itemID)
	if err != nil {
		return err
	}
	if !record.IsBelowThreshold() {
		return nil
	}
	message := fmt.Sprintf("Stock is low: %s remaining", record.TotalStock.String())
	return upsertNotification(ctx, repos.NotificationRepo(), itemType, itemID, notification.TypeLowStock, message)
}

// archiveEmptyOrder closes an order that ended up with no lines
func (s *WithdrawalService) archiveEmptyOrder(ctx context.Context, order *trade.Order) {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order.Archive()
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		s.logger.Warn("Failed to archive order with no surviving lines",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}
