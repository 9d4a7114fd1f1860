package services

import (
	"context"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a single ledger entry.
	GetEntryByID(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a page of entries and the token for the next page.
	ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, userID string) ([]domain.LedgerEntry, *string, error)
}

// LedgerWriterSvc defines write operations for ledger entries
type LedgerWriterSvc interface {
	// CreateEntry records a new PENDING ledger entry.
	CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error)

	// UpdateEntryStatus moves an entry through its approval workflow.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger entry service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
