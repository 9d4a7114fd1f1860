package reports

import (
	"fmt"
	"sort"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// sortedBrackets returns a copy of brackets ordered by threshold.
func sortedBrackets(brackets []domain.TaxBracket) []domain.TaxBracket {
	out := make([]domain.TaxBracket, len(brackets))
	copy(out, brackets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold.LessThan(out[j].Threshold)
	})
	return out
}

// ComputeIncomeTax applies a progressive bracket table to income. Each bracket's rate
// covers income above its threshold up to the next threshold. Negative income is
// taxed as zero. The returned slices list only the brackets income reaches.
func ComputeIncomeTax(income decimal.Decimal, brackets []domain.TaxBracket) (decimal.Decimal, []domain.TaxBracketSlice) {
	slices := []domain.TaxBracketSlice{}
	tax := decimal.Zero
	if !income.IsPositive() {
		return tax, slices
	}

	table := sortedBrackets(brackets)
	for i, b := range table {
		if !income.GreaterThan(b.Threshold) {
			break
		}
		upper := income
		var to *decimal.Decimal
		if i+1 < len(table) {
			next := table[i+1].Threshold
			to = &next
			if income.GreaterThan(next) {
				upper = next
			}
		}
		taxable := upper.Sub(b.Threshold)
		sliceTax := taxable.Mul(b.Rate).Div(hundred).Round(2)
		tax = tax.Add(sliceTax)
		slices = append(slices, domain.TaxBracketSlice{
			From:       b.Threshold,
			To:         to,
			Rate:       b.Rate,
			TaxableAmt: taxable,
			Tax:        sliceTax,
		})
	}
	return tax, slices
}

func isPurchaseCategory(c domain.AccountCategory) bool {
	return c == domain.CategoryExpense || c == domain.CategoryCostOfGoodsSold
}

// BuildTax computes the tax report variant for taxType over the entries that pass
// filter. brackets is only consulted for INCOME_TAX.
func BuildTax(taxType domain.TaxType, entries []domain.LedgerEntry, accounts map[string]domain.Account, filter accounting.AggregationFilter, brackets []domain.TaxBracket) (domain.TaxReport, error) {
	if !taxType.IsValid() {
		return domain.TaxReport{}, fmt.Errorf("unknown tax type %q", taxType)
	}

	agg := accounting.Aggregate(entries, accounts, filter)
	report := domain.TaxReport{
		TaxType:     taxType,
		PeriodStart: filter.Start,
		PeriodEnd:   filter.End,
		Brackets:    []domain.TaxBracketSlice{},
		Warnings:    append([]string{}, agg.Warnings...),
	}
	var s domain.TaxSummary

	switch taxType {
	case domain.TaxGST:
		s.TaxableSales = agg.Total(domain.CategoryRevenue)
		s.TaxablePurchases = agg.Total(domain.CategoryExpense).Add(agg.Total(domain.CategoryCostOfGoodsSold))
		for _, e := range entries {
			if !filter.Matches(e) || e.AccountID == nil {
				continue
			}
			account, ok := accounts[*e.AccountID]
			if !ok {
				continue
			}
			switch {
			case account.Category == domain.CategoryRevenue:
				s.OutputTax = s.OutputTax.Add(e.TaxAmount)
			case isPurchaseCategory(account.Category):
				s.InputTax = s.InputTax.Add(e.TaxAmount)
			}
		}
		s.NetPayable = s.OutputTax.Sub(s.InputTax)

	case domain.TaxIncomeTax:
		for _, t := range agg.Accounts(func(a domain.Account) bool { return a.Category == domain.CategoryRevenue }) {
			s.GrossIncome = s.GrossIncome.Add(t.Credits)
		}
		for _, t := range agg.Accounts(func(a domain.Account) bool { return isPurchaseCategory(a.Category) }) {
			s.TotalDeductions = s.TotalDeductions.Add(t.Debits)
		}
		s.TaxableIncome = s.GrossIncome.Sub(s.TotalDeductions)
		s.TaxLiability, report.Brackets = ComputeIncomeTax(s.TaxableIncome, brackets)
		if s.TaxableIncome.IsPositive() {
			s.EffectiveRate = Percentage(s.TaxLiability, s.TaxableIncome)
		}

	case domain.TaxTDS:
		for _, e := range entries {
			if !filter.Matches(e) || !e.TDSAmount.IsPositive() {
				continue
			}
			s.TotalTDS = s.TotalTDS.Add(e.TDSAmount)
			s.TDSEntryCount++
		}
	}

	report.Summary = s
	return report, nil
}
