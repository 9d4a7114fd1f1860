package dto

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// CreateLedgerEntryRequest defines the data needed to record a ledger entry.
// Exactly one of DebitAmount and CreditAmount must be positive.
type CreateLedgerEntryRequest struct {
	EntryDate     string          `json:"entryDate" binding:"required,iso_date"`
	ReferenceType string          `json:"referenceType" binding:"required,oneof=JOB_SHEET INVOICE PAYMENT ADJUSTMENT TRANSFER PARTY_TRANSACTION"`
	ReferenceID   *string         `json:"referenceID"`
	AccountID     *string         `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TDSAmount     decimal.Decimal `json:"tdsAmount"`
	Description   string          `json:"description"`
	PartyID       *string         `json:"partyID"`
	JobID         *string         `json:"jobID"`
}

// UpdateLedgerEntryStatusRequest moves an entry through its approval workflow.
type UpdateLedgerEntryStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED POSTED CANCELLED REJECTED"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string          `json:"entryID"`
	EntryDate     string          `json:"entryDate"`
	ReferenceType string          `json:"referenceType"`
	ReferenceID   *string         `json:"referenceID"`
	AccountID     *string         `json:"accountID"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TDSAmount     decimal.Decimal `json:"tdsAmount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	PartyID       *string         `json:"partyID"`
	JobID         *string         `json:"jobID"`
	ApprovedBy    *string         `json:"approvedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		EntryDate:     e.EntryDate.Format(DateLayout),
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		AccountID:     e.AccountID,
		DebitAmount:   e.DebitAmount,
		CreditAmount:  e.CreditAmount,
		TaxAmount:     e.TaxAmount,
		TDSAmount:     e.TDSAmount,
		Description:   e.Description,
		Status:        string(e.Status),
		PartyID:       e.PartyID,
		JobID:         e.JobID,
		ApprovedBy:    e.ApprovedBy,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return res
}

// ListLedgerEntriesParams defines query parameters for listing ledger entries.
type ListLedgerEntriesParams struct {
	From          string  `form:"from" binding:"omitempty,iso_date"`
	To            string  `form:"to" binding:"omitempty,iso_date"`
	Status        string  `form:"status" binding:"omitempty,oneof=PENDING APPROVED POSTED CANCELLED REJECTED"`
	ReferenceType string  `form:"reference_type" binding:"omitempty,oneof=JOB_SHEET INVOICE PAYMENT ADJUSTMENT TRANSFER PARTY_TRANSACTION"`
	PartyID       string  `form:"party_id"`
	AccountID     string  `form:"account_id"`
	Limit         int     `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken     *string `form:"nextToken"`
}

// ListLedgerEntriesResponse wraps one page of entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}
