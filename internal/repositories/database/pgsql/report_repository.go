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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const reportColumns = `report_id, report_type, name, period_type, period_start, period_end, as_of_date, tax_type,
	status, figures, flags, warnings, generated_from_transactions, notes, generated_by,
	created_at, created_by, last_updated_at, last_updated_by`

// numericFigure matches figure values that can be cast to numeric.
const numericFigure = `'^-?[0-9]+(\.[0-9]+)?$'`

// reportRepository stores generated reports and their line items.
type reportRepository struct {
	BaseRepository
}

func newReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &reportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*reportRepository)(nil)

func scanReport(row pgx.Row) (models.Report, error) {
	var m models.Report
	err := row.Scan(
		&m.ReportID,
		&m.ReportType,
		&m.Name,
		&m.PeriodType,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.AsOfDate,
		&m.TaxType,
		&m.Status,
		&m.Figures,
		&m.Flags,
		&m.Warnings,
		&m.GeneratedFromTransactions,
		&m.Notes,
		&m.GeneratedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// reportWhere translates a report filter into SQL conditions. Pagination is ignored.
func reportWhere(filter domain.ReportFilter) *whereClause {
	where := &whereClause{}
	if filter.ReportType != nil {
		where.add("report_type = ?", string(*filter.ReportType))
	}
	if filter.Status != nil {
		where.add("status = ?", string(*filter.Status))
	}
	if filter.PeriodType != nil {
		where.add("period_type = ?", string(*filter.PeriodType))
	}
	return where
}

// SaveReportHeader inserts the report header. JSON columns are never stored as NULL.
func (r *reportRepository) SaveReportHeader(ctx context.Context, report domain.Report) error {
	m := mapping.ToModelReport(report)
	if m.Figures == nil {
		m.Figures = map[string]decimal.Decimal{}
	}
	if m.Flags == nil {
		m.Flags = map[string]bool{}
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}

	query := `
		INSERT INTO financial_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReportID,
		m.ReportType,
		m.Name,
		m.PeriodType,
		m.PeriodStart,
		m.PeriodEnd,
		m.AsOfDate,
		m.TaxType,
		m.Status,
		m.Figures,
		m.Flags,
		m.Warnings,
		m.GeneratedFromTransactions,
		m.Notes,
		m.GeneratedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: report %s already exists", apperrors.ErrDuplicate, m.ReportID)
		}
		return apperrors.NewAppError(500, "failed to insert report "+m.ReportID, err)
	}
	return nil
}

// SaveLineItems inserts every line item for a report in one transaction, so either all
// of them are stored or none are.
func (r *reportRepository) SaveLineItems(ctx context.Context, reportID string, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	query := `
		INSERT INTO report_line_items (line_item_id, report_id, account_id, category, description, amount, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelLineItem(item)
		batch.Queue(query, m.LineItemID, reportID, m.AccountID, m.Category, m.Description, m.Amount, m.SortOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert line items for report "+reportID, err)
	}
	return r.Commit(ctx, tx)
}

// FindReportByID retrieves a report header together with its line items.
func (r *reportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM financial_reports WHERE report_id = $1;`

	m, err := scanReport(r.Pool.QueryRow(ctx, query, reportID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find report by ID "+reportID, err)
	}
	report := mapping.ToDomainReport(m)

	items, err := r.findLineItems(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report.LineItems = items
	return &report, nil
}

func (r *reportRepository) findLineItems(ctx context.Context, reportID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, report_id, account_id, category, description, amount, sort_order
		FROM report_line_items
		WHERE report_id = $1
		ORDER BY sort_order;
	`
	rows, err := r.Pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items for report "+reportID, err)
	}
	defer rows.Close()

	items := []domain.LineItem{}
	for rows.Next() {
		var m models.LineItem
		if err := rows.Scan(&m.LineItemID, &m.ReportID, &m.AccountID, &m.Category, &m.Description, &m.Amount, &m.SortOrder); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line item row for report "+reportID, err)
		}
		items = append(items, mapping.ToDomainLineItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line item rows for report "+reportID, err)
	}
	return items, nil
}

// ListReports retrieves one page of report headers, newest first.
func (r *reportRepository) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	where := reportWhere(filter)
	query := `SELECT ` + reportColumns + ` FROM financial_reports` + where.String() +
		` ORDER BY created_at DESC LIMIT ` + where.next(limit) + ` OFFSET ` + where.next((page-1)*limit) + `;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query reports", err)
	}
	defer rows.Close()

	reports := []domain.Report{}
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan report row", err)
		}
		reports = append(reports, mapping.ToDomainReport(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating report rows", err)
	}
	return reports, nil
}

// SummarizeReports counts matching reports by status and averages each numeric figure
// across them.
func (r *reportRepository) SummarizeReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportListSummary, error) {
	summary := &domain.ReportListSummary{Averages: map[string]decimal.Decimal{}}

	where := reportWhere(filter)
	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM financial_reports`+where.String()+` GROUP BY status;`, where.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count reports", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan report count row", err)
		}
		summary.Total += count
		switch domain.ReportStatus(status) {
		case domain.ReportDraft:
			summary.Draft = count
		case domain.ReportFinalized:
			summary.Finalized = count
		case domain.ReportArchived:
			summary.Archived = count
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating report count rows", err)
	}

	where = reportWhere(filter)
	where.addRaw("f.value ~ " + numericFigure)
	avgQuery := `
		SELECT f.key, AVG(f.value::numeric)
		FROM financial_reports
		CROSS JOIN LATERAL jsonb_each_text(figures) AS f(key, value)` + where.String() + `
		GROUP BY f.key;`
	rows, err = r.Pool.Query(ctx, avgQuery, where.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to average report figures", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var avg decimal.Decimal
		if err := rows.Scan(&key, &avg); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan figure average row", err)
		}
		summary.Averages[key] = avg.Round(2)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating figure average rows", err)
	}
	return summary, nil
}

// UpdateReportStatus changes the status of a report.
func (r *reportRepository) UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE financial_reports
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE report_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, reportID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of report "+reportID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateReportNotes replaces the notes of a report.
func (r *reportRepository) UpdateReportNotes(ctx context.Context, reportID string, notes string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE financial_reports
		SET notes = $2, last_updated_at = $3, last_updated_by = $4
		WHERE report_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, reportID, notes, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update notes of report "+reportID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteReport removes a report; its line items go with it through ON DELETE CASCADE.
func (r *reportRepository) DeleteReport(ctx context.Context, reportID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM financial_reports WHERE report_id = $1;`, reportID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete report "+reportID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
