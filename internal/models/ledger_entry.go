package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is a row of the ledger_entries table.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	EntryDate     time.Time       `db:"entry_date"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	AccountID     *string         `db:"account_id"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	TDSAmount     decimal.Decimal `db:"tds_amount"`
	Description   string          `db:"description"`
	Status        string          `db:"status"`
	PartyID       *string         `db:"party_id"`
	JobID         *string         `db:"job_id"`
	ApprovedBy    *string         `db:"approved_by"`
	AuditFields
}
