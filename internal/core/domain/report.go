package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportType identifies a persisted report variant.
type ReportType string

const (
	ReportProfitLoss   ReportType = "PROFIT_LOSS"
	ReportBalanceSheet ReportType = "BALANCE_SHEET"
	ReportCashFlow     ReportType = "CASH_FLOW"
	ReportTax          ReportType = "TAX"
	ReportCustom       ReportType = "CUSTOM"
)

// IsValid reports whether t is a known report type.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportProfitLoss, ReportBalanceSheet, ReportCashFlow, ReportTax, ReportCustom:
		return true
	}
	return false
}

// UsesPeriod reports whether the report covers a [start, end] period rather than an as-of date.
func (t ReportType) UsesPeriod() bool {
	return t != ReportBalanceSheet
}

// ReportStatus is the lifecycle state of a persisted report.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportFinalized ReportStatus = "FINALIZED"
	ReportArchived  ReportStatus = "ARCHIVED"
)

var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportDraft:     {ReportFinalized, ReportArchived},
	ReportFinalized: {ReportArchived},
}

// ParseReportStatus accepts the canonical names plus the legacy "FINAL" spelling.
func ParseReportStatus(raw string) (ReportStatus, bool) {
	switch s := ReportStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case ReportDraft, ReportFinalized, ReportArchived:
		return s, true
	case "FINAL":
		return ReportFinalized, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether a report in status s may move to next.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range reportTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PeriodType describes the cadence a report was produced for.
type PeriodType string

const (
	PeriodMonthly   PeriodType = "MONTHLY"
	PeriodQuarterly PeriodType = "QUARTERLY"
	PeriodYearly    PeriodType = "YEARLY"
	PeriodCustom    PeriodType = "CUSTOM"
)

// IsValid reports whether p is a known period type.
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly, PeriodCustom:
		return true
	}
	return false
}

// TaxType selects the tax report variant.
type TaxType string

const (
	TaxGST       TaxType = "GST"
	TaxIncomeTax TaxType = "INCOME_TAX"
	TaxTDS       TaxType = "TDS"
)

// IsValid reports whether t is a known tax type.
func (t TaxType) IsValid() bool {
	switch t {
	case TaxGST, TaxIncomeTax, TaxTDS:
		return true
	}
	return false
}

// Report is the persisted header of a generated report.
type Report struct {
	ReportID                  string                     `json:"reportID"`
	ReportType                ReportType                 `json:"reportType"`
	Name                      string                     `json:"name"`
	PeriodType                PeriodType                 `json:"periodType"`
	PeriodStart               *time.Time                 `json:"periodStart,omitempty"`
	PeriodEnd                 *time.Time                 `json:"periodEnd,omitempty"`
	AsOfDate                  *time.Time                 `json:"asOfDate,omitempty"`
	TaxType                   *TaxType                   `json:"taxType,omitempty"`
	Status                    ReportStatus               `json:"status"`
	Figures                   map[string]decimal.Decimal `json:"figures"`
	Flags                     map[string]bool            `json:"flags,omitempty"`
	Warnings                  []string                   `json:"warnings,omitempty"`
	GeneratedFromTransactions bool                       `json:"generatedFromTransactions"`
	Notes                     string                     `json:"notes"`
	GeneratedBy               string                     `json:"generatedBy"`
	LineItems                 []LineItem                 `json:"lineItems,omitempty"`
	AuditFields
}

// LineItem is a single row belonging to a report, breaking down a summary figure.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"`
	ReportID    string          `json:"reportID"`
	AccountID   *string         `json:"accountID,omitempty"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SortOrder   int             `json:"sortOrder"`
}

// ReportFilter narrows persisted report listings. Page is 1-based.
type ReportFilter struct {
	ReportType *ReportType
	Status     *ReportStatus
	PeriodType *PeriodType
	Page       int
	Limit      int
}

// ReportListSummary aggregates the reports matched by a filter, ignoring pagination.
type ReportListSummary struct {
	Total     int                        `json:"total"`
	Draft     int                        `json:"draft"`
	Finalized int                        `json:"finalized"`
	Archived  int                        `json:"archived"`
	Averages  map[string]decimal.Decimal `json:"averages"`
}

// PersistResult is the outcome of the two-step header then line-item write.
// A nil error with LineItemsPersisted false means the header exists without its line items.
type PersistResult struct {
	Report             *Report
	LineItemsPersisted bool
	LineItemsError     string
}
