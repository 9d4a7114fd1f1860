package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a row of the financial_reports table. Figures, Flags and Warnings are
// stored as JSONB.
type Report struct {
	ReportID                  string                     `db:"report_id"`
	ReportType                string                     `db:"report_type"`
	Name                      string                     `db:"name"`
	PeriodType                string                     `db:"period_type"`
	PeriodStart               *time.Time                 `db:"period_start"`
	PeriodEnd                 *time.Time                 `db:"period_end"`
	AsOfDate                  *time.Time                 `db:"as_of_date"`
	TaxType                   *string                    `db:"tax_type"`
	Status                    string                     `db:"status"`
	Figures                   map[string]decimal.Decimal `db:"figures"`
	Flags                     map[string]bool            `db:"flags"`
	Warnings                  []string                   `db:"warnings"`
	GeneratedFromTransactions bool                       `db:"generated_from_transactions"`
	Notes                     string                     `db:"notes"`
	GeneratedBy               string                     `db:"generated_by"`
	AuditFields
}

// LineItem is a row of the report_line_items table.
type LineItem struct {
	LineItemID  string          `db:"line_item_id"`
	ReportID    string          `db:"report_id"`
	AccountID   *string         `db:"account_id"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	SortOrder   int             `db:"sort_order"`
}
