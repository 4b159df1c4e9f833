package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/foodworks/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcilerService keeps the sales ledger in lockstep with orders: after any
// change to an order's lines or payment state, reconciliation re-derives what
// the single ledger entry for that order should say and creates, rewrites or
// removes it accordingly. The derivation only reads current state, so
// reconciling twice in a row is a no-op.
type ReconcilerService struct {
	txScope TransactionScope
	pricer  *Pricer
	logger  *zap.Logger
}

// NewReconcilerService creates a new ReconcilerService
func NewReconcilerService(txScope TransactionScope, pricer *Pricer, logger *zap.Logger) *ReconcilerService {
	return &ReconcilerService{
		txScope: txScope,
		pricer:  pricer,
		logger:  logger,
	}
}

// Reconcile settles the ledger entry for one order in its own transaction
func (s *ReconcilerService) Reconcile(ctx context.Context, orderID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return s.reconcileWithin(ctx, repos, orderID)
	})
}

// reconcileWithin performs the settlement inside an already-open transaction
// so order mutations and their ledger effect commit together
func (s *ReconcilerService) reconcileWithin(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) error {
	order, err := repos.OrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	existing, err := repos.LedgerRepo().FindByOrderID(ctx, orderID)
	if err != nil && err != shared.ErrNotFound {
		return err
	}

	amount, description, keep, err := s.deriveEntry(ctx, repos, order, existing)
	if err != nil {
		return err
	}

	switch {
	case !keep && existing == nil:
		return nil
	case !keep:
		s.logger.Info("Removing ledger entry with nothing left to book",
			zap.Int64("order_number", order.OrderNumber),
		)
		return repos.LedgerRepo().DeleteByOrderID(ctx, orderID)
	case existing != nil:
		if existing.Amount.Equals(amount) && existing.Description == description {
			return nil
		}
		if err := existing.UpdateAmount(amount, description); err != nil {
			return err
		}
		return repos.LedgerRepo().Save(ctx, existing)
	default:
		entry := finance.NewSalesEntryForOrder(order.ID, amount, time.Now(), description)
		return repos.LedgerRepo().Save(ctx, entry)
	}
}

// deriveEntry computes what the order's ledger entry should hold. keep=false
// means the order must have no entry at all.
func (s *ReconcilerService) deriveEntry(ctx context.Context, repos TransactionalRepositories, order *trade.Order, existing *finance.LedgerEntry) (valueobject.Money, string, bool, error) {
	if order.PaymentStatus == trade.PaymentUnpaid {
		return valueobject.ZeroPHP(), "", false, nil
	}

	lines, err := repos.WithdrawalRepo().FindByOrder(ctx, order.ID)
	if err != nil {
		return valueobject.ZeroPHP(), "", false, err
	}
	// An order stripped of all its lines has nothing left to book,
	// whatever its payment status says.
	if len(lines) == 0 {
		return valueobject.ZeroPHP(), "", false, nil
	}

	switch order.PaymentStatus {
	case trade.PaymentPartial:
		// The manually entered paid amount goes to the ledger verbatim;
		// the order total is irrelevant until the balance is settled.
		amount := valueobject.NewMoneyPHP(*order.PaidAmount).Round(2)
		description := fmt.Sprintf("Order #%d partial payment", order.OrderNumber)
		return amount, description, true, nil

	default:
		total, err := s.pricer.ComputeOrderTotal(ctx, lines)
		if err != nil {
			return valueobject.ZeroPHP(), "", false, err
		}

		description := fmt.Sprintf("Order #%d payment", order.OrderNumber)
		if existing != nil && !existing.Amount.Equals(total) && total.Amount().GreaterThan(existing.Amount.Amount()) {
			// Settling a partial: the audit trail shows what was already
			// paid and what the final payment added.
			additional := total.Amount().Sub(existing.Amount.Amount())
			description = fmt.Sprintf("Order #%d payment: %s + %s",
				order.OrderNumber,
				existing.Amount.StringFixed(2),
				additional.StringFixed(2),
			)
		}
		return total, description, true, nil
	}
}
