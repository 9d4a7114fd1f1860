package pgsql

import (
	"context"
	"fmt"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	"github.com/ganpathioverseas/erp_finance/internal/models"
	"github.com/ganpathioverseas/erp_finance/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxLedgerStore serves report reads from a single REPEATABLE READ snapshot so a
// statement never mixes rows committed at different moments.
type pgxLedgerStore struct {
	BaseRepository
}

func newPgxLedgerStore(pool *pgxpool.Pool) portsrepo.LedgerStore {
	return &pgxLedgerStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerStore = (*pgxLedgerStore)(nil)

// WithReadSnapshot runs fn inside one read-only transaction.
func (s *pgxLedgerStore) WithReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	tx, err := s.BeginReadSnapshot(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx) // Ignored once committed

	if err := fn(ctx, &ledgerSnapshot{tx: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

type ledgerSnapshot struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerSnapshot = (*ledgerSnapshot)(nil)

// Accounts returns every account keyed by ID, including inactive ones.
func (s *ledgerSnapshot) Accounts(ctx context.Context) (map[string]domain.Account, error) {
	accounts, err := queryAccounts(ctx, s.tx, `SELECT `+accountColumns+` FROM accounts;`)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	return byID, nil
}

// Entries returns every entry matching the filter in date order.
func (s *ledgerSnapshot) Entries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	where := entryWhere(filter)
	query := `SELECT ` + entryColumns + ` FROM ledger_entries` + where.String() + ` ORDER BY entry_date, created_at;`

	rows, err := s.tx.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// UnpaidInvoices returns invoices with an outstanding balance, joined with party names.
func (s *ledgerSnapshot) UnpaidInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `
		SELECT i.invoice_id, i.invoice_number, i.party_id, COALESCE(p.name, ''), i.invoice_date, i.due_date,
		       i.total_amount, i.amount_paid, i.balance_due, i.status
		FROM invoices i
		LEFT JOIN parties p ON p.party_id = i.party_id
		WHERE i.status IN ('UNPAID', 'PARTIALLY_PAID') AND i.balance_due > 0
		ORDER BY i.due_date NULLS LAST, i.invoice_number;
	`
	rows, err := s.tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unpaid invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID,
			&m.InvoiceNumber,
			&m.PartyID,
			&m.PartyName,
			&m.InvoiceDate,
			&m.DueDate,
			&m.TotalAmount,
			&m.AmountPaid,
			&m.BalanceDue,
			&m.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
