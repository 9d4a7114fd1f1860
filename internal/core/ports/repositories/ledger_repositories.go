package repositories

import (
	"context"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger entries
type LedgerEntryReader interface {
	// FindEntryByID retrieves a single ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a page of entries matching the filter, newest first, using
	// token-based pagination. It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerEntryWriter defines write operations for ledger entries
type LedgerEntryWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntryStatus moves an entry to a new status. approvedBy is recorded when not nil.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, approvedBy *string, updatedBy string, updatedAt time.Time) error
}

// LedgerRepositoryFacade combines all ledger entry repository interfaces
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerSnapshot reads everything a report needs from one consistent view of the store.
type LedgerSnapshot interface {
	// Accounts returns every account keyed by ID, including inactive ones.
	Accounts(ctx context.Context) (map[string]domain.Account, error)

	// Entries returns every entry matching the filter in date order.
	Entries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error)

	// UnpaidInvoices returns invoices with an outstanding balance, joined with party names.
	UnpaidInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// LedgerStore opens read snapshots over the ledger.
type LedgerStore interface {
	// WithReadSnapshot runs fn inside a single read-only transaction so every query fn
	// issues sees the same data. The snapshot is released when fn returns.
	WithReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap LedgerSnapshot) error) error
}
