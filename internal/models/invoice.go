package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table joined with the owning party's name.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	PartyID       string          `db:"party_id"`
	PartyName     string          `db:"party_name"` // from parties
	InvoiceDate   time.Time       `db:"invoice_date"`
	DueDate       *time.Time      `db:"due_date"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	BalanceDue    decimal.Decimal `db:"balance_due"`
	Status        string          `db:"status"`
}
