package reports

import (
	"fmt"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Figure keys stored in a persisted report's summary.
const (
	FigTotalRevenue        = "total_revenue"
	FigCostOfGoodsSold     = "cost_of_goods_sold"
	FigGrossProfit         = "gross_profit"
	FigTotalExpenses       = "total_expenses"
	FigOperatingIncome     = "operating_income"
	FigOtherIncome         = "other_income"
	FigOtherExpenses       = "other_expenses"
	FigNetIncome           = "net_income"
	FigGrossProfitMargin   = "gross_profit_margin"
	FigNetProfitMargin     = "net_profit_margin"
	FigCurrentAssets       = "current_assets"
	FigFixedAssets         = "fixed_assets"
	FigOtherAssets         = "other_assets"
	FigTotalAssets         = "total_assets"
	FigCurrentLiabilities  = "current_liabilities"
	FigLongTermLiabilities = "long_term_liabilities"
	FigTotalLiabilities    = "total_liabilities"
	FigOwnersEquity        = "owners_equity"
	FigRetainedEarnings    = "retained_earnings"
	FigTotalEquity         = "total_equity"
	FigBalanceDifference   = "balance_difference"
	FigBeginningCash       = "beginning_cash"
	FigOperating           = "operating"
	FigInvesting           = "investing"
	FigFinancing           = "financing"
	FigNetChange           = "net_change"
	FigEndingCash          = "ending_cash"
	FigTaxableSales        = "taxable_sales"
	FigOutputTax           = "output_tax"
	FigTaxablePurchases    = "taxable_purchases"
	FigInputTax            = "input_tax"
	FigNetPayable          = "net_payable"
	FigGrossIncome         = "gross_income"
	FigTotalDeductions     = "total_deductions"
	FigTaxableIncome       = "taxable_income"
	FigTaxLiability        = "tax_liability"
	FigEffectiveRate       = "effective_rate"
	FigTotalTDS            = "total_tds"
	FigTDSEntryCount       = "tds_entry_count"

	FlagIsBalanced = "is_balanced"
)

// Computed is a generated statement flattened into what a persisted report stores.
type Computed struct {
	Figures   map[string]decimal.Decimal
	Flags     map[string]bool
	LineItems []domain.LineItem
	Warnings  []string
}

func accountLines(items []domain.LineItem, category string, rows []domain.AccountAmount) []domain.LineItem {
	for _, r := range rows {
		id := r.AccountID
		items = append(items, domain.LineItem{
			AccountID:   &id,
			Category:    category,
			Description: fmt.Sprintf("%s %s", r.Code, r.Name),
			Amount:      r.Amount,
			SortOrder:   len(items) + 1,
		})
	}
	return items
}

// FromProfitLoss flattens a profit and loss statement.
func FromProfitLoss(r domain.ProfitLossReport) Computed {
	s := r.Summary
	items := []domain.LineItem{}
	items = accountLines(items, "Revenue", r.Revenue)
	items = accountLines(items, "Cost Of Goods Sold", r.CostOfSales)
	items = accountLines(items, "Expenses", r.Expenses)
	items = accountLines(items, "Other Income", r.OtherIncome)
	items = accountLines(items, "Other Expenses", r.OtherExpenses)
	return Computed{
		Figures: map[string]decimal.Decimal{
			FigTotalRevenue:      s.TotalRevenue,
			FigCostOfGoodsSold:   s.CostOfGoodsSold,
			FigGrossProfit:       s.GrossProfit,
			FigTotalExpenses:     s.TotalExpenses,
			FigOperatingIncome:   s.OperatingIncome,
			FigOtherIncome:       s.OtherIncome,
			FigOtherExpenses:     s.OtherExpenses,
			FigNetIncome:         s.NetIncome,
			FigGrossProfitMargin: s.GrossProfitMargin,
			FigNetProfitMargin:   s.NetProfitMargin,
		},
		Flags:     map[string]bool{},
		LineItems: items,
		Warnings:  r.Warnings,
	}
}

// FromBalanceSheet flattens a balance sheet. Retained earnings get their own line.
func FromBalanceSheet(r domain.BalanceSheetReport) Computed {
	s := r.Summary
	items := []domain.LineItem{}
	items = accountLines(items, "Current Assets", r.CurrentAssets)
	items = accountLines(items, "Fixed Assets", r.FixedAssets)
	items = accountLines(items, "Other Assets", r.OtherAssets)
	items = accountLines(items, "Current Liabilities", r.CurrentLiabilities)
	items = accountLines(items, "Long Term Liabilities", r.LongTermLiabilities)
	items = accountLines(items, "Equity", r.Equity)
	items = append(items, domain.LineItem{
		Category:    "Equity",
		Description: "Retained Earnings",
		Amount:      s.RetainedEarnings,
		SortOrder:   len(items) + 1,
	})
	return Computed{
		Figures: map[string]decimal.Decimal{
			FigCurrentAssets:       s.CurrentAssets,
			FigFixedAssets:         s.FixedAssets,
			FigOtherAssets:         s.OtherAssets,
			FigTotalAssets:         s.TotalAssets,
			FigCurrentLiabilities:  s.CurrentLiabilities,
			FigLongTermLiabilities: s.LongTermLiabilities,
			FigTotalLiabilities:    s.TotalLiabilities,
			FigOwnersEquity:        s.OwnersEquity,
			FigRetainedEarnings:    s.RetainedEarnings,
			FigTotalEquity:         s.TotalEquity,
			FigBalanceDifference:   s.BalanceDifference,
		},
		Flags:     map[string]bool{FlagIsBalanced: s.IsBalanced},
		LineItems: items,
		Warnings:  r.Warnings,
	}
}

// FromCashFlow flattens a cash flow statement.
func FromCashFlow(r domain.CashFlowReport) Computed {
	s := r.Summary
	items := make([]domain.LineItem, 0, len(r.Lines))
	for _, l := range r.Lines {
		items = append(items, domain.LineItem{
			AccountID:   l.AccountID,
			Category:    ActivityLabel(l.Activity),
			Description: l.Label,
			Amount:      l.Amount,
			SortOrder:   len(items) + 1,
		})
	}
	return Computed{
		Figures: map[string]decimal.Decimal{
			FigBeginningCash: s.BeginningCash,
			FigOperating:     s.Operating,
			FigInvesting:     s.Investing,
			FigFinancing:     s.Financing,
			FigNetChange:     s.NetChange,
			FigEndingCash:    s.EndingCash,
		},
		Flags:     map[string]bool{},
		LineItems: items,
		Warnings:  r.Warnings,
	}
}

// FromTax flattens a tax report. Income tax bracket slices become line items.
func FromTax(r domain.TaxReport) Computed {
	s := r.Summary
	figures := map[string]decimal.Decimal{}
	items := []domain.LineItem{}
	switch r.TaxType {
	case domain.TaxGST:
		figures[FigTaxableSales] = s.TaxableSales
		figures[FigOutputTax] = s.OutputTax
		figures[FigTaxablePurchases] = s.TaxablePurchases
		figures[FigInputTax] = s.InputTax
		figures[FigNetPayable] = s.NetPayable
	case domain.TaxIncomeTax:
		figures[FigGrossIncome] = s.GrossIncome
		figures[FigTotalDeductions] = s.TotalDeductions
		figures[FigTaxableIncome] = s.TaxableIncome
		figures[FigTaxLiability] = s.TaxLiability
		figures[FigEffectiveRate] = s.EffectiveRate
		for _, b := range r.Brackets {
			desc := fmt.Sprintf("%s and above @ %s%%", b.From.StringFixed(2), b.Rate.String())
			if b.To != nil {
				desc = fmt.Sprintf("%s to %s @ %s%%", b.From.StringFixed(2), b.To.StringFixed(2), b.Rate.String())
			}
			items = append(items, domain.LineItem{
				Category:    "Income Tax Bracket",
				Description: desc,
				Amount:      b.Tax,
				SortOrder:   len(items) + 1,
			})
		}
	case domain.TaxTDS:
		figures[FigTotalTDS] = s.TotalTDS
		figures[FigTDSEntryCount] = decimal.NewFromInt(int64(s.TDSEntryCount))
	}
	return Computed{Figures: figures, Flags: map[string]bool{}, LineItems: items, Warnings: r.Warnings}
}

func fig(figures map[string]decimal.Decimal, key string) decimal.Decimal {
	if v, ok := figures[key]; ok {
		return v
	}
	return decimal.Zero
}

// FromFigures rebuilds the derived figures of a report whose base figures were supplied
// by the caller rather than computed from the ledger. Unknown keys are kept for CUSTOM
// reports and dropped otherwise. Supplied figures never carry line items.
func FromFigures(reportType domain.ReportType, taxType *domain.TaxType, from, to time.Time, figures map[string]decimal.Decimal, brackets []domain.TaxBracket, tolerance decimal.Decimal) (Computed, error) {
	switch reportType {
	case domain.ReportProfitLoss:
		c := FromProfitLoss(BuildProfitLossFromFigures(from, to, domain.ProfitLossSummary{
			TotalRevenue:    fig(figures, FigTotalRevenue),
			CostOfGoodsSold: fig(figures, FigCostOfGoodsSold),
			TotalExpenses:   fig(figures, FigTotalExpenses),
			OtherIncome:     fig(figures, FigOtherIncome),
			OtherExpenses:   fig(figures, FigOtherExpenses),
		}))
		c.LineItems = []domain.LineItem{}
		return c, nil

	case domain.ReportBalanceSheet:
		c := FromBalanceSheet(BuildBalanceSheetFromFigures(to, domain.BalanceSheetSummary{
			CurrentAssets:       fig(figures, FigCurrentAssets),
			FixedAssets:         fig(figures, FigFixedAssets),
			OtherAssets:         fig(figures, FigOtherAssets),
			CurrentLiabilities:  fig(figures, FigCurrentLiabilities),
			LongTermLiabilities: fig(figures, FigLongTermLiabilities),
			OwnersEquity:        fig(figures, FigOwnersEquity),
			RetainedEarnings:    fig(figures, FigRetainedEarnings),
		}, tolerance))
		c.LineItems = []domain.LineItem{}
		return c, nil

	case domain.ReportCashFlow:
		s := domain.CashFlowSummary{
			BeginningCash: fig(figures, FigBeginningCash),
			Operating:     fig(figures, FigOperating),
			Investing:     fig(figures, FigInvesting),
			Financing:     fig(figures, FigFinancing),
		}
		s.NetChange = s.Operating.Add(s.Investing).Add(s.Financing)
		s.EndingCash = s.BeginningCash.Add(s.NetChange)
		c := FromCashFlow(domain.CashFlowReport{PeriodStart: from, PeriodEnd: to, Summary: s})
		return c, nil

	case domain.ReportTax:
		if taxType == nil || !taxType.IsValid() {
			return Computed{}, fmt.Errorf("tax reports need a valid tax type")
		}
		var s domain.TaxSummary
		r := domain.TaxReport{TaxType: *taxType, PeriodStart: from, PeriodEnd: to}
		switch *taxType {
		case domain.TaxGST:
			s.TaxableSales = fig(figures, FigTaxableSales)
			s.OutputTax = fig(figures, FigOutputTax)
			s.TaxablePurchases = fig(figures, FigTaxablePurchases)
			s.InputTax = fig(figures, FigInputTax)
			s.NetPayable = s.OutputTax.Sub(s.InputTax)
		case domain.TaxIncomeTax:
			s.GrossIncome = fig(figures, FigGrossIncome)
			s.TotalDeductions = fig(figures, FigTotalDeductions)
			s.TaxableIncome = s.GrossIncome.Sub(s.TotalDeductions)
			s.TaxLiability, r.Brackets = ComputeIncomeTax(s.TaxableIncome, brackets)
			if s.TaxableIncome.IsPositive() {
				s.EffectiveRate = Percentage(s.TaxLiability, s.TaxableIncome)
			}
		case domain.TaxTDS:
			s.TotalTDS = fig(figures, FigTotalTDS)
			s.TDSEntryCount = int(fig(figures, FigTDSEntryCount).IntPart())
		}
		r.Summary = s
		c := FromTax(r)
		c.LineItems = []domain.LineItem{}
		return c, nil

	case domain.ReportCustom:
		out := make(map[string]decimal.Decimal, len(figures))
		for k, v := range figures {
			out[k] = v
		}
		return Computed{Figures: out, Flags: map[string]bool{}, LineItems: []domain.LineItem{}}, nil
	}
	return Computed{}, fmt.Errorf("unknown report type %q", reportType)
}
