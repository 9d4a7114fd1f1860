package services

import (
	"context"
	"io"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
)

// ReportingService defines operations for generating financial statements on demand
type ReportingService interface {
	// ProfitAndLoss generates a profit and loss report for a closed period
	ProfitAndLoss(ctx context.Context, from, to time.Time, userID string) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)

	// CashFlow generates a cash flow statement for a closed period
	CashFlow(ctx context.Context, from, to time.Time, userID string) (*domain.CashFlowReport, error)

	// Tax generates the requested tax report variant for a closed period
	Tax(ctx context.Context, taxType domain.TaxType, from, to time.Time, userID string) (*domain.TaxReport, error)

	// ReceivablesAging buckets all currently unpaid invoices by days overdue
	ReceivablesAging(ctx context.Context, userID string) (*domain.ReceivablesAgingReport, error)
}

// ReportStoreSvc defines operations on persisted reports
type ReportStoreSvc interface {
	// GenerateReport creates a DRAFT report, computing its figures from the ledger when
	// requested, and persists the header followed by its line items.
	GenerateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.PersistResult, error)

	// GetReport retrieves a persisted report with its line items.
	GetReport(ctx context.Context, reportID string, userID string) (*domain.Report, error)

	// ListReports retrieves a page of reports and the summary of every match.
	ListReports(ctx context.Context, filter domain.ReportFilter, userID string) ([]domain.Report, *domain.ReportListSummary, error)

	// UpdateReportStatus moves a report through DRAFT, FINALIZED and ARCHIVED.
	UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.Report, error)

	// DeleteReport removes a report and its line items.
	DeleteReport(ctx context.Context, reportID string, userID string) error

	// ExportReportCSV writes a report and its line items as CSV.
	ExportReportCSV(ctx context.Context, reportID string, userID string, w io.Writer) error
}

// ReportingSvcFacade combines on-demand statements and persisted reports
type ReportingSvcFacade interface {
	ReportingService
	ReportStoreSvc
}
