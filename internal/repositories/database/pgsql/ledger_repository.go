package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	"github.com/ganpathioverseas/erp_finance/internal/models"
	"github.com/ganpathioverseas/erp_finance/internal/utils/mapping"
	"github.com/ganpathioverseas/erp_finance/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, entry_date, reference_type, reference_id, account_id, debit_amount, credit_amount,
	tax_amount, tds_amount, description, status, party_id, job_id, approved_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// scanEntry reads one row selected with entryColumns.
func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.AccountID,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.TaxAmount,
		&m.TDSAmount,
		&m.Description,
		&m.Status,
		&m.PartyID,
		&m.JobID,
		&m.ApprovedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// entryWhere translates an entry filter into SQL conditions.
func entryWhere(filter domain.LedgerEntryFilter) *whereClause {
	where := &whereClause{}
	if filter.From != nil {
		where.add("entry_date >= ?", *filter.From)
	}
	if filter.To != nil {
		where.add("entry_date <= ?", *filter.To)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where.add("status = ANY(?)", statuses)
	}
	if len(filter.ReferenceTypes) > 0 {
		refs := make([]string, len(filter.ReferenceTypes))
		for i, rt := range filter.ReferenceTypes {
			refs[i] = string(rt)
		}
		where.add("reference_type = ANY(?)", refs)
	}
	if filter.PartyID != nil {
		where.add("party_id = ?", *filter.PartyID)
	}
	if filter.AccountID != nil {
		where.add("account_id = ?", *filter.AccountID)
	}
	return where
}

// SaveEntry inserts a new ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.EntryDate,
		m.ReferenceType,
		m.ReferenceID,
		m.AccountID,
		m.DebitAmount,
		m.CreditAmount,
		m.TaxAmount,
		m.TDSAmount,
		m.Description,
		m.Status,
		m.PartyID,
		m.JobID,
		m.ApprovedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: ledger entry references an unknown account or party", apperrors.ErrValidation)
		}
		return apperrors.NewAppError(500, "failed to insert ledger entry "+m.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainLedgerEntry(m)
	return &entry, nil
}

// ListEntries retrieves a page of entries, newest first, using token-based pagination.
// It returns the entries, a token for the next page (if any), and an error.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	where := entryWhere(filter)
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		where.add("(entry_date, created_at) < (?, ?)", lastDate, lastCreatedAt)
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries` + where.String() +
		` ORDER BY entry_date DESC, created_at DESC LIMIT ` + where.next(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()

	page := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	if len(page) > limit {
		// The token points at the last row of this page; the next query starts after it.
		last := page[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		page = page[:limit]
	}
	return mapping.ToDomainLedgerEntrySlice(page), nextTokenVal, nil
}

// UpdateEntryStatus moves an entry to a new status.
func (r *PgxLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, approvedBy *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET status = $2,
		    approved_by = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, string(status), approvedBy, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger entry status for "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
