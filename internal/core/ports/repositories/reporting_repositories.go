package repositories

import (
	"context"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// ReportReader defines read operations for persisted reports
type ReportReader interface {
	// FindReportByID retrieves a report header together with its line items.
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)

	// ListReports retrieves one page of report headers, newest first.
	ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error)

	// SummarizeReports counts the reports matching the filter by status and averages
	// their numeric figures, ignoring pagination.
	SummarizeReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportListSummary, error)
}

// ReportWriter defines write operations for persisted reports
type ReportWriter interface {
	// SaveReportHeader inserts the report header without line items.
	SaveReportHeader(ctx context.Context, report domain.Report) error

	// SaveLineItems inserts all line items for a report in a single transaction.
	SaveLineItems(ctx context.Context, reportID string, items []domain.LineItem) error

	// UpdateReportStatus changes the status of a report.
	UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, updatedBy string, updatedAt time.Time) error

	// UpdateReportNotes replaces the notes of a report.
	UpdateReportNotes(ctx context.Context, reportID string, notes string, updatedBy string, updatedAt time.Time) error

	// DeleteReport removes a report; its line items are removed by cascade.
	DeleteReport(ctx context.Context, reportID string) error
}

// ReportRepositoryFacade combines all report repository interfaces
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
