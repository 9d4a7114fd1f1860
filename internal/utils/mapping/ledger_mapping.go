package mapping

import (
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		EntryDate:     d.EntryDate,
		ReferenceType: string(d.ReferenceType),
		ReferenceID:   d.ReferenceID,
		AccountID:     d.AccountID,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		TaxAmount:     d.TaxAmount,
		TDSAmount:     d.TDSAmount,
		Description:   d.Description,
		Status:        string(d.Status),
		PartyID:       d.PartyID,
		JobID:         d.JobID,
		ApprovedBy:    d.ApprovedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		EntryDate:     m.EntryDate,
		ReferenceType: domain.ReferenceType(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		AccountID:     m.AccountID,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		TaxAmount:     m.TaxAmount,
		TDSAmount:     m.TDSAmount,
		Description:   m.Description,
		Status:        domain.EntryStatus(m.Status),
		PartyID:       m.PartyID,
		JobID:         m.JobID,
		ApprovedBy:    m.ApprovedBy,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of model entries to domain entries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		PartyID:       m.PartyID,
		PartyName:     m.PartyName,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		BalanceDue:    m.BalanceDue,
		Status:        domain.InvoiceStatus(m.Status),
	}
}
