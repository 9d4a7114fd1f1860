package mapping

import (
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/models"
)

// ToModelReport converts a domain Report header to a model Report
func ToModelReport(d domain.Report) models.Report {
	var taxType *string
	if d.TaxType != nil {
		t := string(*d.TaxType)
		taxType = &t
	}
	return models.Report{
		ReportID:                  d.ReportID,
		ReportType:                string(d.ReportType),
		Name:                      d.Name,
		PeriodType:                string(d.PeriodType),
		PeriodStart:               d.PeriodStart,
		PeriodEnd:                 d.PeriodEnd,
		AsOfDate:                  d.AsOfDate,
		TaxType:                   taxType,
		Status:                    string(d.Status),
		Figures:                   d.Figures,
		Flags:                     d.Flags,
		Warnings:                  d.Warnings,
		GeneratedFromTransactions: d.GeneratedFromTransactions,
		Notes:                     d.Notes,
		GeneratedBy:               d.GeneratedBy,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReport converts a model Report to a domain Report without line items
func ToDomainReport(m models.Report) domain.Report {
	var taxType *domain.TaxType
	if m.TaxType != nil {
		t := domain.TaxType(*m.TaxType)
		taxType = &t
	}
	return domain.Report{
		ReportID:                  m.ReportID,
		ReportType:                domain.ReportType(m.ReportType),
		Name:                      m.Name,
		PeriodType:                domain.PeriodType(m.PeriodType),
		PeriodStart:               m.PeriodStart,
		PeriodEnd:                 m.PeriodEnd,
		AsOfDate:                  m.AsOfDate,
		TaxType:                   taxType,
		Status:                    domain.ReportStatus(m.Status),
		Figures:                   m.Figures,
		Flags:                     m.Flags,
		Warnings:                  m.Warnings,
		GeneratedFromTransactions: m.GeneratedFromTransactions,
		Notes:                     m.Notes,
		GeneratedBy:               m.GeneratedBy,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:  d.LineItemID,
		ReportID:    d.ReportID,
		AccountID:   d.AccountID,
		Category:    d.Category,
		Description: d.Description,
		Amount:      d.Amount,
		SortOrder:   d.SortOrder,
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:  m.LineItemID,
		ReportID:    m.ReportID,
		AccountID:   m.AccountID,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
		SortOrder:   m.SortOrder,
	}
}

// ToDomainUserRole converts a model UserRole to a domain UserRoleAssignment
func ToDomainUserRole(m models.UserRole) domain.UserRoleAssignment {
	return domain.UserRoleAssignment{
		UserID:     m.UserID,
		Role:       domain.UserRole(m.Role),
		AssignedBy: m.AssignedBy,
		AssignedAt: m.AssignedAt,
	}
}
