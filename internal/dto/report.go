package dto

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReportRequest defines the data needed to generate and persist a report.
// When GenerateFromTransactions is false the caller supplies Figures directly.
type CreateReportRequest struct {
	ReportType               string                     `json:"report_type" binding:"required,oneof=PROFIT_LOSS BALANCE_SHEET CASH_FLOW TAX CUSTOM"`
	Name                     string                     `json:"name" binding:"required,max=255"`
	PeriodType               string                     `json:"period_type" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY CUSTOM"`
	PeriodStart              string                     `json:"period_start" binding:"omitempty,iso_date"`
	PeriodEnd                string                     `json:"period_end" binding:"omitempty,iso_date"`
	AsOfDate                 string                     `json:"as_of_date" binding:"omitempty,iso_date"`
	TaxType                  string                     `json:"tax_type" binding:"omitempty,oneof=GST INCOME_TAX TDS"`
	Figures                  map[string]decimal.Decimal `json:"figures"`
	Notes                    string                     `json:"notes"`
	GenerateFromTransactions bool                       `json:"generate_from_transactions"`
}

// UpdateReportStatusRequest moves a report through its lifecycle.
type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,report_status"`
}

// ListReportsParams defines query parameters for listing reports.
type ListReportsParams struct {
	ReportType string `form:"report_type" binding:"omitempty,oneof=PROFIT_LOSS BALANCE_SHEET CASH_FLOW TAX CUSTOM"`
	Status     string `form:"status" binding:"omitempty,report_status"`
	PeriodType string `form:"period_type" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY CUSTOM"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	Limit      int    `form:"limit,default=20" binding:"min=1,max=100"`
}

// LineItemResponse is one persisted line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	AccountID   *string         `json:"accountID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sortOrder"`
}

// ReportResponse defines the data returned for a persisted report.
type ReportResponse struct {
	ReportID                  string                     `json:"reportID"`
	ReportType                string                     `json:"reportType"`
	Name                      string                     `json:"name"`
	PeriodType                string                     `json:"periodType"`
	PeriodStart               *string                    `json:"periodStart"`
	PeriodEnd                 *string                    `json:"periodEnd"`
	AsOfDate                  *string                    `json:"asOfDate"`
	TaxType                   *string                    `json:"taxType"`
	Status                    string                     `json:"status"`
	Figures                   map[string]decimal.Decimal `json:"figures"`
	Flags                     map[string]bool            `json:"flags"`
	Warnings                  []string                   `json:"warnings"`
	GeneratedFromTransactions bool                       `json:"generatedFromTransactions"`
	Notes                     string                     `json:"notes"`
	GeneratedBy               string                     `json:"generatedBy"`
	LineItems                 []LineItemResponse         `json:"lineItems,omitempty"`
	CreatedAt                 time.Time                  `json:"createdAt"`
	LastUpdatedAt             time.Time                  `json:"lastUpdatedAt"`
	LastUpdatedBy             string                     `json:"lastUpdatedBy"`
}

// CreateReportResponse is returned after a report is generated. LineItemsError is set
// when the header was stored but its line items could not be.
type CreateReportResponse struct {
	Report         ReportResponse `json:"report"`
	LineItemsSaved bool           `json:"lineItemsSaved"`
	LineItemsError *string        `json:"lineItemsError,omitempty"`
}

// PaginationResponse describes the page returned by a list call.
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ReportSummaryResponse aggregates every report matching a list filter.
type ReportSummaryResponse struct {
	Total     int                        `json:"total"`
	Draft     int                        `json:"draft"`
	Finalized int                        `json:"finalized"`
	Archived  int                        `json:"archived"`
	Averages  map[string]decimal.Decimal `json:"averages"`
}

// ListReportsResponse wraps one page of reports with the summary block.
type ListReportsResponse struct {
	Reports    []ReportResponse      `json:"reports"`
	Pagination PaginationResponse    `json:"pagination"`
	Summary    ReportSummaryResponse `json:"summary"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ToReportResponse converts a domain.Report to its DTO.
func ToReportResponse(r *domain.Report) ReportResponse {
	var taxType *string
	if r.TaxType != nil {
		t := string(*r.TaxType)
		taxType = &t
	}
	figures := r.Figures
	if figures == nil {
		figures = map[string]decimal.Decimal{}
	}
	flags := r.Flags
	if flags == nil {
		flags = map[string]bool{}
	}
	warnings := r.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	res := ReportResponse{
		ReportID:                  r.ReportID,
		ReportType:                string(r.ReportType),
		Name:                      r.Name,
		PeriodType:                string(r.PeriodType),
		PeriodStart:               formatDatePtr(r.PeriodStart),
		PeriodEnd:                 formatDatePtr(r.PeriodEnd),
		AsOfDate:                  formatDatePtr(r.AsOfDate),
		TaxType:                   taxType,
		Status:                    string(r.Status),
		Figures:                   figures,
		Flags:                     flags,
		Warnings:                  warnings,
		GeneratedFromTransactions: r.GeneratedFromTransactions,
		Notes:                     r.Notes,
		GeneratedBy:               r.GeneratedBy,
		CreatedAt:                 r.CreatedAt,
		LastUpdatedAt:             r.LastUpdatedAt,
		LastUpdatedBy:             r.LastUpdatedBy,
	}
	if len(r.LineItems) > 0 {
		res.LineItems = make([]LineItemResponse, len(r.LineItems))
		for i, item := range r.LineItems {
			res.LineItems[i] = LineItemResponse{
				LineItemID:  item.LineItemID,
				AccountID:   item.AccountID,
				Category:    item.Category,
				Description: item.Description,
				Amount:      item.Amount,
				SortOrder:   item.SortOrder,
			}
		}
	}
	return res
}

// ToCreateReportResponse converts the outcome of a generation request.
func ToCreateReportResponse(result *domain.PersistResult) CreateReportResponse {
	res := CreateReportResponse{
		Report:         ToReportResponse(result.Report),
		LineItemsSaved: result.LineItemsPersisted,
	}
	if !result.LineItemsPersisted && result.LineItemsError != "" {
		msg := result.LineItemsError
		res.LineItemsError = &msg
	}
	return res
}

// ToListReportsResponse converts a page of reports plus the summary block.
func ToListReportsResponse(reports []domain.Report, summary *domain.ReportListSummary, page, limit int) ListReportsResponse {
	res := ListReportsResponse{
		Reports:    make([]ReportResponse, len(reports)),
		Pagination: PaginationResponse{Page: page, Limit: limit},
		Summary:    ReportSummaryResponse{Averages: map[string]decimal.Decimal{}},
	}
	for i := range reports {
		res.Reports[i] = ToReportResponse(&reports[i])
	}
	if summary != nil {
		res.Summary.Total = summary.Total
		res.Summary.Draft = summary.Draft
		res.Summary.Finalized = summary.Finalized
		res.Summary.Archived = summary.Archived
		if summary.Averages != nil {
			res.Summary.Averages = summary.Averages
		}
		res.Pagination.Total = summary.Total
	}
	if limit > 0 {
		res.Pagination.TotalPages = (res.Pagination.Total + limit - 1) / limit
	}
	return res
}
