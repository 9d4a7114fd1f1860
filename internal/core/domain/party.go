package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is a customer or supplier. It carries contact details only; balances are derived
// from ledger entries and invoices.
type Party struct {
	PartyID       string `json:"partyID"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	AuditFields
}

// InvoiceStatus is the payment state of a customer invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "UNPAID"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	InvoiceCancelled     InvoiceStatus = "CANCELLED"
)

// Invoice is a receivable raised against a party.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	PartyID       string          `json:"partyID"`
	PartyName     string          `json:"partyName"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	Status        InvoiceStatus   `json:"status"`
}

// IsUnpaid reports whether the invoice still has money owing.
func (i Invoice) IsUnpaid() bool {
	if !i.BalanceDue.IsPositive() {
		return false
	}
	return i.Status == InvoiceUnpaid || i.Status == InvoicePartiallyPaid
}
