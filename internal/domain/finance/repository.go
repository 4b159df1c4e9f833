package finance

import (
	"context"
	"time"

	"github.com/foodworks/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerEntryRepository defines the interface for ledger persistence
type LedgerEntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	// FindByOrderID returns the reconciled sales entry for an order, or
	// shared.ErrNotFound when the order has none.
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*LedgerEntry, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*LedgerEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*LedgerEntry, error)
	Save(ctx context.Context, entry *LedgerEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
