package reports

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultBalanceTolerance is the largest |assets - (liabilities + equity)| still
// reported as balanced.
var DefaultBalanceTolerance = decimal.RequireFromString("0.01")

// IsBalanced reports whether |difference| is strictly below tolerance.
func IsBalanced(difference, tolerance decimal.Decimal) bool {
	return difference.Abs().LessThan(tolerance)
}

// BuildBalanceSheet assembles a balance sheet from an aggregation over every reportable
// entry dated on or before asOf. Retained earnings are the cumulative
// revenue - COGS - expenses over the same entries and are added to equity as a plug.
// An unbalanced result is flagged, never rejected.
func BuildBalanceSheet(agg *accounting.Aggregation, asOf time.Time, tolerance decimal.Decimal) domain.BalanceSheetReport {
	if tolerance.IsZero() {
		tolerance = DefaultBalanceTolerance
	}

	currentAssets, totalCurrentAssets := collect(agg, func(a domain.Account) bool {
		if a.Category != domain.CategoryAsset {
			return false
		}
		switch a.Subcategory {
		case domain.SubcategoryCash, domain.SubcategoryCurrentAsset, domain.SubcategoryNone:
			return true
		}
		return false
	})
	fixedAssets, totalFixedAssets := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryAsset && a.Subcategory == domain.SubcategoryFixedAsset
	})
	otherAssets, totalOtherAssets := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryAsset && a.Subcategory == domain.SubcategoryOtherAsset
	})
	currentLiabilities, totalCurrentLiabilities := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryLiability && a.Subcategory != domain.SubcategoryLongTermLiability
	})
	longTermLiabilities, totalLongTermLiabilities := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryLiability && a.Subcategory == domain.SubcategoryLongTermLiability
	})
	equity, ownersEquity := collect(agg, func(a domain.Account) bool {
		return a.Category == domain.CategoryEquity
	})

	retained := agg.Total(domain.CategoryRevenue).
		Sub(agg.Total(domain.CategoryCostOfGoodsSold)).
		Sub(agg.Total(domain.CategoryExpense))

	s := domain.BalanceSheetSummary{
		CurrentAssets:       totalCurrentAssets,
		FixedAssets:         totalFixedAssets,
		OtherAssets:         totalOtherAssets,
		CurrentLiabilities:  totalCurrentLiabilities,
		LongTermLiabilities: totalLongTermLiabilities,
		OwnersEquity:        ownersEquity,
		RetainedEarnings:    retained,
	}
	s.TotalAssets = s.CurrentAssets.Add(s.FixedAssets).Add(s.OtherAssets)
	s.TotalLiabilities = s.CurrentLiabilities.Add(s.LongTermLiabilities)
	s.TotalEquity = s.OwnersEquity.Add(s.RetainedEarnings)
	s.BalanceDifference = s.TotalAssets.Sub(s.TotalLiabilities.Add(s.TotalEquity))
	s.IsBalanced = IsBalanced(s.BalanceDifference, tolerance)

	report := domain.BalanceSheetReport{
		AsOf:                asOf,
		Summary:             s,
		CurrentAssets:       currentAssets,
		FixedAssets:         fixedAssets,
		OtherAssets:         otherAssets,
		CurrentLiabilities:  currentLiabilities,
		LongTermLiabilities: longTermLiabilities,
		Equity:              equity,
		Warnings:            []string{},
	}
	if agg != nil {
		report.Warnings = append(report.Warnings, agg.Warnings...)
	}
	return report
}

// BuildBalanceSheetFromFigures derives totals, the difference and the balanced flag
// from caller-supplied group figures.
func BuildBalanceSheetFromFigures(asOf time.Time, base domain.BalanceSheetSummary, tolerance decimal.Decimal) domain.BalanceSheetReport {
	if tolerance.IsZero() {
		tolerance = DefaultBalanceTolerance
	}
	s := base
	s.TotalAssets = s.CurrentAssets.Add(s.FixedAssets).Add(s.OtherAssets)
	s.TotalLiabilities = s.CurrentLiabilities.Add(s.LongTermLiabilities)
	s.TotalEquity = s.OwnersEquity.Add(s.RetainedEarnings)
	s.BalanceDifference = s.TotalAssets.Sub(s.TotalLiabilities.Add(s.TotalEquity))
	s.IsBalanced = IsBalanced(s.BalanceDifference, tolerance)
	return domain.BalanceSheetReport{
		AsOf:                asOf,
		Summary:             s,
		CurrentAssets:       []domain.AccountAmount{},
		FixedAssets:         []domain.AccountAmount{},
		OtherAssets:         []domain.AccountAmount{},
		CurrentLiabilities:  []domain.AccountAmount{},
		LongTermLiabilities: []domain.AccountAmount{},
		Equity:              []domain.AccountAmount{},
		Warnings:            []string{},
	}
}
