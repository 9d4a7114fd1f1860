package reports

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage returns part/whole*100 rounded to two places, or zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func toAccountAmount(t accounting.AccountTotals) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID:   t.Account.AccountID,
		Code:        t.Account.Code,
		Name:        t.Account.Name,
		Category:    t.Account.Category,
		Subcategory: t.Account.Subcategory,
		Amount:      t.Balance,
	}
}

func collect(agg *accounting.Aggregation, keep func(domain.Account) bool) ([]domain.AccountAmount, decimal.Decimal) {
	rows := agg.Accounts(keep)
	out := make([]domain.AccountAmount, 0, len(rows))
	total := decimal.Zero
	for _, r := range rows {
		out = append(out, toAccountAmount(r))
		total = total.Add(r.Balance)
	}
	return out, total
}

// BuildProfitLoss assembles a profit and loss statement from an aggregation over the
// period. REVENUE accounts tagged OTHER_INCOME and EXPENSE accounts tagged OTHER_EXPENSE
// are reported below operating income.
func BuildProfitLoss(agg *accounting.Aggregation, from, to time.Time) domain.ProfitLossReport {
	revenue, totalRevenue := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryRevenue && a.Subcategory != domain.SubcategoryOtherIncome
	})
	otherIncome, totalOtherIncome := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryRevenue && a.Subcategory == domain.SubcategoryOtherIncome
	})
	cogs, totalCOGS := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryCostOfGoodsSold
	})
	expenses, totalExpenses := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryExpense && a.Subcategory != domain.SubcategoryOtherExpense
	})
	otherExpenses, totalOtherExpenses := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryExpense && a.Subcategory == domain.SubcategoryOtherExpense
	})

	report := BuildProfitLossFromFigures(from, to, domain.ProfitLossSummary{
		TotalRevenue:    totalRevenue,
		CostOfGoodsSold: totalCOGS,
		TotalExpenses:   totalExpenses,
		OtherIncome:     totalOtherIncome,
		OtherExpenses:   totalOtherExpenses,
	})
	report.Revenue = revenue
	report.CostOfSales = cogs
	report.Expenses = expenses
	report.OtherIncome = otherIncome
	report.OtherExpenses = otherExpenses
	if agg != nil {
		report.Warnings = append(report.Warnings, agg.Warnings...)
	}
	return report
}

// BuildProfitLossFromFigures derives gross profit, operating income, net income and
// margins from the five base figures. Derived fields present on base are ignored.
func BuildProfitLossFromFigures(from, to time.Time, base domain.ProfitLossSummary) domain.ProfitLossReport {
	s := domain.ProfitLossSummary{
		TotalRevenue:    base.TotalRevenue,
		CostOfGoodsSold: base.CostOfGoodsSold,
		TotalExpenses:   base.TotalExpenses,
		OtherIncome:     base.OtherIncome,
		OtherExpenses:   base.OtherExpenses,
	}
	s.GrossProfit = s.TotalRevenue.Sub(s.CostOfGoodsSold)
	s.OperatingIncome = s.GrossProfit.Sub(s.TotalExpenses)
	s.NetIncome = s.OperatingIncome.Add(s.OtherIncome).Sub(s.OtherExpenses)
	s.GrossProfitMargin = Percentage(s.GrossProfit, s.TotalRevenue)
	s.NetProfitMargin = Percentage(s.NetIncome, s.TotalRevenue)

	return domain.ProfitLossReport{
		PeriodStart:   from,
		PeriodEnd:     to,
		Summary:       s,
		Revenue:       []domain.AccountAmount{},
		CostOfSales:   []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		OtherIncome:   []domain.AccountAmount{},
		OtherExpenses: []domain.AccountAmount{},
		Warnings:      []string{},
	}
}
