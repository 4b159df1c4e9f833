package finance

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/finance"
	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/foodworks/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerService covers the manual side of the sales and expense book. Entries
// produced by order reconciliation are owned by the reconciler and cannot be
// edited or deleted by hand; they change only when their order changes.
type LedgerService struct {
	ledgerRepo finance.LedgerEntryRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo finance.LedgerEntryRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// CreateEntry records a manual ledger entry
func (s *LedgerService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*LedgerEntryResponse, error) {
	amount := valueobject.NewMoneyPHP(req.Amount).Round(2)
	entry, err := finance.NewLedgerEntry(finance.EntryKind(req.Kind), req.Category, amount, req.Date, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp := NewLedgerEntryResponse(entry)
	return &resp, nil
}

// UpdateEntry edits a manual ledger entry
func (s *LedgerService) UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateEntryRequest) error {
	entry, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.IsReconciled() {
		return shared.NewDomainError("ENTRY_RECONCILED", "Entries bound to an order are maintained by reconciliation")
	}

	amount := valueobject.NewMoneyPHP(req.Amount).Round(2)
	if err := entry.Update(req.Category, amount, req.Date, req.Description); err != nil {
		return err
	}
	return s.ledgerRepo.Save(ctx, entry)
}

// DeleteEntry removes a manual ledger entry
func (s *LedgerService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	entry, err := s.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.IsReconciled() {
		return shared.NewDomainError("ENTRY_RECONCILED", "Entries bound to an order are maintained by reconciliation")
	}
	return s.ledgerRepo.Delete(ctx, id)
}

// ListEntries returns ledger entries in a date range
func (s *LedgerService) ListEntries(ctx context.Context, from, to time.Time, filter shared.Filter) ([]LedgerEntryResponse, error) {
	entries, err := s.ledgerRepo.FindByDateRange(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LedgerEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewLedgerEntryResponse(entry))
	}
	return responses, nil
}

// Summarize totals sales and expenses over a date range
func (s *LedgerService) Summarize(ctx context.Context, from, to time.Time) (*LedgerSummaryResponse, error) {
	entries, err := s.ledgerRepo.FindByDateRange(ctx, from, to, shared.Filter{Page: 1, PageSize: 10000})
	if err != nil {
		return nil, err
	}

	sales := valueobject.ZeroPHP()
	expenses := valueobject.ZeroPHP()
	for _, entry := range entries {
		switch entry.Kind {
		case finance.KindSales:
			sales = sales.MustAdd(entry.Amount)
		case finance.KindExpense:
			expenses = expenses.MustAdd(entry.Amount)
		}
	}

	net, err := sales.Subtract(expenses)
	if err != nil {
		return nil, err
	}
	return &LedgerSummaryResponse{
		From:     from,
		To:       to,
		Sales:    sales.Amount(),
		Expenses: expenses.Amount(),
		Net:      net.Amount(),
	}, nil
}
