package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/core/reports"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/google/uuid"
)

// LineItemsNotSavedNote is appended to a report's notes when its header was stored but its
// line items were not.
const LineItemsNotSavedNote = "[line items were not saved; regenerate this report for the breakdown]"

const (
	defaultReportPage  = 1
	defaultReportLimit = 20
	maxReportLimit     = 100
)

// reportRequest is a CreateReportRequest after parsing and validation.
type reportRequest struct {
	reportType domain.ReportType
	periodType domain.PeriodType
	taxType    *domain.TaxType
	start      *time.Time
	end        *time.Time
	asOf       *time.Time
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q is not a YYYY-MM-DD date: %w", field, raw, apperrors.ErrValidation)
	}
	return &t, nil
}

func parseReportRequest(req dto.CreateReportRequest) (*reportRequest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("report name is required: %w", apperrors.ErrValidation)
	}
	out := &reportRequest{
		reportType: domain.ReportType(req.ReportType),
		periodType: domain.PeriodCustom,
	}
	if !out.reportType.IsValid() {
		return nil, fmt.Errorf("unknown report type %q: %w", req.ReportType, apperrors.ErrValidation)
	}
	if req.PeriodType != "" {
		out.periodType = domain.PeriodType(req.PeriodType)
		if !out.periodType.IsValid() {
			return nil, fmt.Errorf("unknown period type %q: %w", req.PeriodType, apperrors.ErrValidation)
		}
	}

	var err error
	if out.start, err = parseOptionalDate("period_start", req.PeriodStart); err != nil {
		return nil, err
	}
	if out.end, err = parseOptionalDate("period_end", req.PeriodEnd); err != nil {
		return nil, err
	}
	if out.asOf, err = parseOptionalDate("as_of_date", req.AsOfDate); err != nil {
		return nil, err
	}

	if out.reportType.UsesPeriod() {
		if out.start == nil || out.end == nil {
			return nil, fmt.Errorf("%s reports need period_start and period_end: %w", out.reportType, apperrors.ErrValidation)
		}
		if err := validatePeriod(*out.start, *out.end); err != nil {
			return nil, err
		}
	} else if out.asOf == nil {
		return nil, fmt.Errorf("%s reports need as_of_date: %w", out.reportType, apperrors.ErrValidation)
	}

	if out.reportType == domain.ReportTax {
		taxType := domain.TaxType(req.TaxType)
		if !taxType.IsValid() {
			return nil, fmt.Errorf("tax reports need a tax_type of GST, INCOME_TAX or TDS: %w", apperrors.ErrValidation)
		}
		out.taxType = &taxType
	}

	if req.GenerateFromTransactions {
		if out.reportType == domain.ReportCustom {
			return nil, fmt.Errorf("custom reports cannot be generated from transactions: %w", apperrors.ErrValidation)
		}
	} else if len(req.Figures) == 0 {
		return nil, fmt.Errorf("figures are required unless generate_from_transactions is set: %w", apperrors.ErrValidation)
	}
	return out, nil
}

// GenerateReport computes a report and persists it in two steps: header first, then every
// line item in one transaction. A header failure fails the call. A line item failure
// leaves the header in place and is reported through the result.
func (s *reportingService) GenerateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.PersistResult, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		s.LogError(ctx, err, "User not authorized to generate reports", slog.String("user_id", userID))
		return nil, err
	}
	parsed, err := parseReportRequest(req)
	if err != nil {
		return nil, err
	}

	computed, err := s.compute(ctx, parsed, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := domain.Report{
		ReportID:                  uuid.NewString(),
		ReportType:                parsed.reportType,
		Name:                      strings.TrimSpace(req.Name),
		PeriodType:                parsed.periodType,
		PeriodStart:               parsed.start,
		PeriodEnd:                 parsed.end,
		AsOfDate:                  parsed.asOf,
		TaxType:                   parsed.taxType,
		Status:                    domain.ReportDraft,
		Figures:                   computed.Figures,
		Flags:                     computed.Flags,
		Warnings:                  computed.Warnings,
		GeneratedFromTransactions: req.GenerateFromTransactions,
		Notes:                     req.Notes,
		GeneratedBy:               userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reportRepo.SaveReportHeader(ctx, report); err != nil {
		s.LogError(ctx, err, "Failed to save report header",
			slog.String("report_id", report.ReportID),
			slog.String("report_type", string(report.ReportType)))
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	result := &domain.PersistResult{Report: &report, LineItemsPersisted: true}
	items := make([]domain.LineItem, len(computed.LineItems))
	for i, item := range computed.LineItems {
		item.LineItemID = uuid.NewString()
		item.ReportID = report.ReportID
		items[i] = item
	}

	if len(items) > 0 {
		if err := s.reportRepo.SaveLineItems(ctx, report.ReportID, items); err != nil {
			s.LogError(ctx, err, "Report header saved but line items failed",
				slog.String("report_id", report.ReportID),
				slog.Int("line_items", len(items)))
			s.metrics.LineItemFailure()
			result.LineItemsPersisted = false
			result.LineItemsError = fmt.Sprintf("failed to save %d line items: %v", len(items), err)
			s.markLineItemsMissing(ctx, &report, userID)
		} else {
			report.LineItems = items
		}
	}

	s.invalidate(ctx)
	s.LogInfo(ctx, "Report generated",
		slog.String("report_id", report.ReportID),
		slog.String("report_type", string(report.ReportType)),
		slog.Bool("from_transactions", report.GeneratedFromTransactions),
		slog.Bool("line_items_saved", result.LineItemsPersisted))
	return result, nil
}

// compute produces the figures of a new report, from the ledger or from supplied figures.
func (s *reportingService) compute(ctx context.Context, parsed *reportRequest, req dto.CreateReportRequest) (reports.Computed, error) {
	if !req.GenerateFromTransactions {
		var from, to time.Time
		if parsed.start != nil {
			from = *parsed.start
		}
		switch {
		case parsed.end != nil:
			to = *parsed.end
		case parsed.asOf != nil:
			to = *parsed.asOf
		}
		computed, err := reports.FromFigures(parsed.reportType, parsed.taxType, from, to, req.Figures, s.policy.IncomeTaxBrackets, s.policy.BalanceTolerance)
		if err != nil {
			return computed, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
		return computed, nil
	}

	switch parsed.reportType {
	case domain.ReportProfitLoss:
		r, err := s.buildProfitLoss(ctx, *parsed.start, *parsed.end)
		if err != nil {
			return reports.Computed{}, err
		}
		return reports.FromProfitLoss(r), nil
	case domain.ReportBalanceSheet:
		r, err := s.buildBalanceSheet(ctx, *parsed.asOf)
		if err != nil {
			return reports.Computed{}, err
		}
		return reports.FromBalanceSheet(r), nil
	case domain.ReportCashFlow:
		r, err := s.buildCashFlow(ctx, *parsed.start, *parsed.end)
		if err != nil {
			return reports.Computed{}, err
		}
		return reports.FromCashFlow(r), nil
	case domain.ReportTax:
		r, err := s.buildTax(ctx, *parsed.taxType, *parsed.start, *parsed.end)
		if err != nil {
			return reports.Computed{}, err
		}
		return reports.FromTax(r), nil
	}
	return reports.Computed{}, fmt.Errorf("%s reports cannot be generated from transactions: %w", parsed.reportType, apperrors.ErrValidation)
}

func (s *reportingService) markLineItemsMissing(ctx context.Context, report *domain.Report, userID string) {
	notes := strings.TrimSpace(report.Notes + " " + LineItemsNotSavedNote)
	if err := s.reportRepo.UpdateReportNotes(ctx, report.ReportID, notes, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to mark report as missing line items", slog.String("report_id", report.ReportID))
		return
	}
	report.Notes = notes
}

func (s *reportingService) GetReport(ctx context.Context, reportID string, userID string) (*domain.Report, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find report", slog.String("report_id", reportID))
		}
		return nil, err
	}
	return report, nil
}

func (s *reportingService) ListReports(ctx context.Context, filter domain.ReportFilter, userID string) ([]domain.Report, *domain.ReportListSummary, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, nil, err
	}
	if filter.Page < 1 {
		filter.Page = defaultReportPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultReportLimit
	}
	if filter.Limit > maxReportLimit {
		filter.Limit = maxReportLimit
	}

	list, err := s.reportRepo.ListReports(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reports", slog.Int("page", filter.Page), slog.Int("limit", filter.Limit))
		return nil, nil, fmt.Errorf("failed to list reports: %w", err)
	}
	summary, err := s.reportRepo.SummarizeReports(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize reports")
		return nil, nil, fmt.Errorf("failed to summarize reports: %w", err)
	}
	if list == nil {
		list = []domain.Report{}
	}
	return list, summary, nil
}

func (s *reportingService) UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.Report, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	next, ok := domain.ParseReportStatus(string(status))
	if !ok {
		return nil, fmt.Errorf("unknown report status %q: %w", status, apperrors.ErrValidation)
	}

	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find report for status change", slog.String("report_id", reportID))
		}
		return nil, err
	}
	if !report.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("report %s cannot move from %s to %s: %w", reportID, report.Status, next, apperrors.ErrConflict)
	}

	now := s.now()
	if err := s.reportRepo.UpdateReportStatus(ctx, reportID, next, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update report status",
			slog.String("report_id", reportID),
			slog.String("status", string(next)))
		return nil, fmt.Errorf("failed to update report status: %w", err)
	}
	report.Status = next
	report.LastUpdatedAt = now
	report.LastUpdatedBy = userID

	s.invalidate(ctx)
	s.LogInfo(ctx, "Report status updated",
		slog.String("report_id", reportID),
		slog.String("status", string(next)))
	return report, nil
}

func (s *reportingService) DeleteReport(ctx context.Context, reportID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.reportRepo.DeleteReport(ctx, reportID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete report", slog.String("report_id", reportID))
		}
		return err
	}
	s.invalidate(ctx)
	s.LogInfo(ctx, "Report deleted", slog.String("report_id", reportID))
	return nil
}

// ExportReportCSV writes the header fields, the summary figures and the line items of a
// report as three CSV blocks separated by blank rows.
func (s *reportingService) ExportReportCSV(ctx context.Context, reportID string, userID string, w io.Writer) error {
	report, err := s.GetReport(ctx, reportID, userID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	period := ""
	switch {
	case report.AsOfDate != nil:
		period = "As of " + report.AsOfDate.Format(dto.DateLayout)
	case report.PeriodStart != nil && report.PeriodEnd != nil:
		period = report.PeriodStart.Format(dto.DateLayout) + " to " + report.PeriodEnd.Format(dto.DateLayout)
	}
	rows := [][]string{
		{"Report", report.Name},
		{"Type", string(report.ReportType)},
		{"Status", string(report.Status)},
		{"Period", period},
	}
	if report.TaxType != nil {
		rows = append(rows, []string{"Tax Type", string(*report.TaxType)})
	}
	rows = append(rows, []string{"Generated By", report.GeneratedBy}, []string{})

	keys := make([]string, 0, len(report.Figures))
	for k := range report.Figures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows = append(rows, []string{"Figure", "Value"})
	for _, k := range keys {
		rows = append(rows, []string{reports.FigureLabel(k), report.Figures[k].StringFixed(2)})
	}

	if len(report.LineItems) > 0 {
		items := append([]domain.LineItem(nil), report.LineItems...)
		sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
		rows = append(rows, []string{}, []string{"Category", "Description", "Account", "Amount"})
		for _, item := range items {
			account := ""
			if item.AccountID != nil {
				account = *item.AccountID
			}
			rows = append(rows, []string{item.Category, item.Description, account, item.Amount.StringFixed(2)})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		s.LogError(ctx, err, "Failed to write report CSV", slog.String("report_id", reportID))
		return fmt.Errorf("failed to export report: %w", err)
	}
	return nil
}

func (s *reportingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}
