package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceType identifies the business document a ledger entry came from.
type ReferenceType string

const (
	RefJobSheet         ReferenceType = "JOB_SHEET"
	RefInvoice          ReferenceType = "INVOICE"
	RefPayment          ReferenceType = "PAYMENT"
	RefAdjustment       ReferenceType = "ADJUSTMENT"
	RefTransfer         ReferenceType = "TRANSFER"
	RefPartyTransaction ReferenceType = "PARTY_TRANSACTION"
)

// ReferenceTypes lists every known reference type.
var ReferenceTypes = []ReferenceType{
	RefJobSheet,
	RefInvoice,
	RefPayment,
	RefAdjustment,
	RefTransfer,
	RefPartyTransaction,
}

// IsValid reports whether r is a known reference type.
func (r ReferenceType) IsValid() bool {
	for _, known := range ReferenceTypes {
		if r == known {
			return true
		}
	}
	return false
}

// EntryStatus indicates the approval state of a ledger entry.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryApproved  EntryStatus = "APPROVED"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
	EntryRejected  EntryStatus = "REJECTED"
)

// ReportableStatuses are the entry statuses included in generated figures unless a caller
// asks for something else.
var ReportableStatuses = []EntryStatus{EntryApproved, EntryPosted}

var entryTransitions = map[EntryStatus][]EntryStatus{
	EntryPending:  {EntryApproved, EntryRejected, EntryCancelled},
	EntryApproved: {EntryPosted, EntryCancelled},
}

// IsValid reports whether s is a known entry status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryPending, EntryApproved, EntryPosted, EntryCancelled, EntryRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether an entry in status s may move to next.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range entryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LedgerEntry is a single dated financial record. Exactly one of DebitAmount and
// CreditAmount is positive; the other is zero.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	EntryDate     time.Time       `json:"entryDate"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   *string         `json:"referenceID,omitempty"`
	AccountID     *string         `json:"accountID,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TDSAmount     decimal.Decimal `json:"tdsAmount"`
	Description   string          `json:"description"`
	Status        EntryStatus     `json:"status"`
	PartyID       *string         `json:"partyID,omitempty"`
	JobID         *string         `json:"jobID,omitempty"`
	ApprovedBy    *string         `json:"approvedBy,omitempty"`
	AuditFields
}

// Amount returns the non-zero side of the entry.
func (e LedgerEntry) Amount() decimal.Decimal {
	if e.DebitAmount.IsPositive() {
		return e.DebitAmount
	}
	return e.CreditAmount
}

// IsSingleSided reports whether exactly one of debit/credit is strictly positive and the
// other is exactly zero.
func (e LedgerEntry) IsSingleSided() bool {
	debit, credit := e.DebitAmount, e.CreditAmount
	return (debit.IsPositive() && credit.IsZero()) || (credit.IsPositive() && debit.IsZero())
}

// LedgerEntryFilter narrows ledger entry queries.
type LedgerEntryFilter struct {
	From           *time.Time
	To             *time.Time
	Statuses       []EntryStatus
	ReferenceTypes []ReferenceType
	PartyID        *string
	AccountID      *string
}
