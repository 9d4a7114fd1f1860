package mapping

import (
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	var activity *string
	if d.CashFlowActivity != nil {
		a := string(*d.CashFlowActivity)
		activity = &a
	}
	return models.Account{
		AccountID:        d.AccountID,
		Code:             d.Code,
		Name:             d.Name,
		Category:         string(d.Category),
		Subcategory:      string(d.Subcategory),
		ParentAccountID:  d.ParentAccountID,
		CashFlowActivity: activity,
		Description:      d.Description,
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account. Categories the domain
// does not know are kept as UNCLASSIFIED so reports can flag them instead of failing.
func ToDomainAccount(m models.Account) domain.Account {
	var activity *domain.CashFlowActivity
	if m.CashFlowActivity != nil {
		if a, ok := domain.ParseCashFlowActivity(*m.CashFlowActivity); ok {
			activity = &a
		}
	}
	return domain.Account{
		AccountID:        m.AccountID,
		Code:             m.Code,
		Name:             m.Name,
		Category:         domain.ParseAccountCategory(m.Category),
		Subcategory:      domain.AccountSubcategory(m.Subcategory),
		ParentAccountID:  m.ParentAccountID,
		CashFlowActivity: activity,
		Description:      m.Description,
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
