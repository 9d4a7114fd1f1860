package dto

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodParams are the query parameters shared by period statements.
type PeriodParams struct {
	PeriodStart string `form:"period_start" binding:"required,iso_date"`
	PeriodEnd   string `form:"period_end" binding:"required,iso_date"`
}

// BalanceSheetParams accepts the as-of date under either of its historical names.
type BalanceSheetParams struct {
	AsOfDate string `form:"as_of_date" binding:"omitempty,iso_date"`
	End      string `form:"end" binding:"omitempty,iso_date"`
}

// TaxParams are the query parameters of the tax report.
type TaxParams struct {
	TaxType     string `form:"tax_type" binding:"required,oneof=GST INCOME_TAX TDS"`
	PeriodStart string `form:"period_start" binding:"required,iso_date"`
	PeriodEnd   string `form:"period_end" binding:"required,iso_date"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// PeriodResponse echoes the period a statement covers.
type PeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	Period  PeriodResponse `json:"period"`
	Revenue struct {
		TotalRevenue decimal.Decimal         `json:"totalRevenue"`
		OtherIncome  decimal.Decimal         `json:"otherIncome"`
		Accounts     []AccountAmountResponse `json:"accounts"`
		OtherIncomes []AccountAmountResponse `json:"otherIncomeAccounts"`
	} `json:"revenue"`
	CostOfSales struct {
		Total    decimal.Decimal         `json:"total"`
		Accounts []AccountAmountResponse `json:"accounts"`
	} `json:"costOfSales"`
	Expenses struct {
		TotalExpenses decimal.Decimal         `json:"totalExpenses"`
		OtherExpenses decimal.Decimal         `json:"otherExpenses"`
		Accounts      []AccountAmountResponse `json:"accounts"`
		Others        []AccountAmountResponse `json:"otherExpenseAccounts"`
	} `json:"expenses"`
	Profit struct {
		GrossProfit     decimal.Decimal `json:"grossProfit"`
		OperatingIncome decimal.Decimal `json:"operatingIncome"`
		NetProfit       decimal.Decimal `json:"netProfit"`
		GrossMargin     string          `json:"grossMargin"`
		ProfitMargin    string          `json:"profitMargin"`
	} `json:"profit"`
	Warnings []string `json:"warnings,omitempty"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf   string `json:"asOf"`
	Assets struct {
		Current         decimal.Decimal         `json:"current"`
		Fixed           decimal.Decimal         `json:"fixed"`
		Other           decimal.Decimal         `json:"other"`
		Total           decimal.Decimal         `json:"total"`
		CurrentAccounts []AccountAmountResponse `json:"currentAccounts"`
		FixedAccounts   []AccountAmountResponse `json:"fixedAccounts"`
		OtherAccounts   []AccountAmountResponse `json:"otherAccounts"`
	} `json:"assets"`
	Liabilities struct {
		Current          decimal.Decimal         `json:"current"`
		LongTerm         decimal.Decimal         `json:"longTerm"`
		Total            decimal.Decimal         `json:"total"`
		CurrentAccounts  []AccountAmountResponse `json:"currentAccounts"`
		LongTermAccounts []AccountAmountResponse `json:"longTermAccounts"`
	} `json:"liabilities"`
	Equity struct {
		OwnersEquity     decimal.Decimal         `json:"ownersEquity"`
		RetainedEarnings decimal.Decimal         `json:"retainedEarnings"`
		Total            decimal.Decimal         `json:"total"`
		Accounts         []AccountAmountResponse `json:"accounts"`
	} `json:"equity"`
	Totals struct {
		LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
		Difference           decimal.Decimal `json:"difference"`
		Balanced             bool            `json:"balanced"`
	} `json:"totals"`
	Warnings []string `json:"warnings,omitempty"`
}

// CashFlowLineResponse is one line of a cash flow activity section.
type CashFlowLineResponse struct {
	AccountID *string         `json:"accountID,omitempty"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
}

// CashFlowActivityResponse is one of the three cash flow sections.
type CashFlowActivityResponse struct {
	Label string                 `json:"label"`
	Total decimal.Decimal        `json:"total"`
	Lines []CashFlowLineResponse `json:"lines"`
}

// CashFlowResponse represents the cash flow statement response
type CashFlowResponse struct {
	Period     PeriodResponse           `json:"period"`
	Operating  CashFlowActivityResponse `json:"operating"`
	Investing  CashFlowActivityResponse `json:"investing"`
	Financing  CashFlowActivityResponse `json:"financing"`
	Beginning  decimal.Decimal          `json:"beginningCashBalance"`
	NetChange  decimal.Decimal          `json:"netChangeInCash"`
	EndingCash decimal.Decimal          `json:"endingCashBalance"`
	Warnings   []string                 `json:"warnings,omitempty"`
}

// GSTResponse holds the GST figures of a tax report.
type GSTResponse struct {
	TaxableSales     decimal.Decimal `json:"taxableSales"`
	OutputTax        decimal.Decimal `json:"outputTax"`
	TaxablePurchases decimal.Decimal `json:"taxablePurchases"`
	InputTax         decimal.Decimal `json:"inputTax"`
	NetPayable       decimal.Decimal `json:"netPayable"`
}

// IncomeTaxResponse holds the income tax figures of a tax report.
type IncomeTaxResponse struct {
	GrossIncome     decimal.Decimal          `json:"grossIncome"`
	TotalDeductions decimal.Decimal          `json:"totalDeductions"`
	TaxableIncome   decimal.Decimal          `json:"taxableIncome"`
	TaxLiability    decimal.Decimal          `json:"taxLiability"`
	EffectiveRate   string                   `json:"effectiveRate"`
	Brackets        []domain.TaxBracketSlice `json:"brackets"`
}

// TDSResponse holds the TDS figures of a tax report.
type TDSResponse struct {
	TotalTDS   decimal.Decimal `json:"totalTDS"`
	EntryCount int             `json:"entryCount"`
}

// TaxResponse represents a tax report. Only the section for the requested tax type is set.
type TaxResponse struct {
	TaxType   string             `json:"taxType"`
	Period    PeriodResponse     `json:"period"`
	GST       *GSTResponse       `json:"gst,omitempty"`
	IncomeTax *IncomeTaxResponse `json:"incomeTax,omitempty"`
	TDS       *TDSResponse       `json:"tds,omitempty"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// AgingRowResponse is one unpaid invoice in the aging report.
type AgingRowResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	PartyID       string          `json:"partyID"`
	PartyName     string          `json:"partyName"`
	InvoiceDate   string          `json:"invoiceDate"`
	DueDate       *string         `json:"dueDate"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	DaysOverdue   int             `json:"daysOverdue"`
	Bucket        string          `json:"bucket"`
}

// ReceivablesAgingResponse represents the receivables aging report.
type ReceivablesAgingResponse struct {
	AsOf       string               `json:"asOf"`
	Buckets    []domain.AgingBucket `json:"buckets"`
	Rows       []AgingRowResponse   `json:"rows"`
	GrandTotal decimal.Decimal      `json:"grandTotal"`
}

func toAccountAmounts(rows []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(rows))
	for i, r := range rows {
		out[i] = AccountAmountResponse{AccountID: r.AccountID, Code: r.Code, Name: r.Name, Amount: r.Amount}
	}
	return out
}

func toPeriod(from, to time.Time) PeriodResponse {
	return PeriodResponse{Start: from.Format(DateLayout), End: to.Format(DateLayout)}
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.ProfitLossReport) ProfitAndLossResponse {
	s := report.Summary
	var response ProfitAndLossResponse
	response.Period = toPeriod(report.PeriodStart, report.PeriodEnd)
	response.Revenue.TotalRevenue = s.TotalRevenue
	response.Revenue.OtherIncome = s.OtherIncome
	response.Revenue.Accounts = toAccountAmounts(report.Revenue)
	response.Revenue.OtherIncomes = toAccountAmounts(report.OtherIncome)
	response.CostOfSales.Total = s.CostOfGoodsSold
	response.CostOfSales.Accounts = toAccountAmounts(report.CostOfSales)
	response.Expenses.TotalExpenses = s.TotalExpenses
	response.Expenses.OtherExpenses = s.OtherExpenses
	response.Expenses.Accounts = toAccountAmounts(report.Expenses)
	response.Expenses.Others = toAccountAmounts(report.OtherExpenses)
	response.Profit.GrossProfit = s.GrossProfit
	response.Profit.OperatingIncome = s.OperatingIncome
	response.Profit.NetProfit = s.NetIncome
	response.Profit.GrossMargin = s.GrossProfitMargin.StringFixed(2)
	response.Profit.ProfitMargin = s.NetProfitMargin.StringFixed(2)
	response.Warnings = report.Warnings
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet report to a DTO response
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	s := report.Summary
	var response BalanceSheetResponse
	response.AsOf = report.AsOf.Format(DateLayout)

	response.Assets.Current = s.CurrentAssets
	response.Assets.Fixed = s.FixedAssets
	response.Assets.Other = s.OtherAssets
	response.Assets.Total = s.TotalAssets
	response.Assets.CurrentAccounts = toAccountAmounts(report.CurrentAssets)
	response.Assets.FixedAccounts = toAccountAmounts(report.FixedAssets)
	response.Assets.OtherAccounts = toAccountAmounts(report.OtherAssets)

	response.Liabilities.Current = s.CurrentLiabilities
	response.Liabilities.LongTerm = s.LongTermLiabilities
	response.Liabilities.Total = s.TotalLiabilities
	response.Liabilities.CurrentAccounts = toAccountAmounts(report.CurrentLiabilities)
	response.Liabilities.LongTermAccounts = toAccountAmounts(report.LongTermLiabilities)

	response.Equity.OwnersEquity = s.OwnersEquity
	response.Equity.RetainedEarnings = s.RetainedEarnings
	response.Equity.Total = s.TotalEquity
	response.Equity.Accounts = toAccountAmounts(report.Equity)

	response.Totals.LiabilitiesAndEquity = s.TotalLiabilities.Add(s.TotalEquity)
	response.Totals.Difference = s.BalanceDifference
	response.Totals.Balanced = s.IsBalanced
	response.Warnings = report.Warnings
	return response
}

// ToCashFlowResponse converts a domain cash flow report to a DTO response
func ToCashFlowResponse(report *domain.CashFlowReport, labels map[domain.CashFlowActivity]string) CashFlowResponse {
	s := report.Summary
	response := CashFlowResponse{
		Period:     toPeriod(report.PeriodStart, report.PeriodEnd),
		Operating:  CashFlowActivityResponse{Label: labels[domain.ActivityOperating], Total: s.Operating, Lines: []CashFlowLineResponse{}},
		Investing:  CashFlowActivityResponse{Label: labels[domain.ActivityInvesting], Total: s.Investing, Lines: []CashFlowLineResponse{}},
		Financing:  CashFlowActivityResponse{Label: labels[domain.ActivityFinancing], Total: s.Financing, Lines: []CashFlowLineResponse{}},
		Beginning:  s.BeginningCash,
		NetChange:  s.NetChange,
		EndingCash: s.EndingCash,
		Warnings:   report.Warnings,
	}
	for _, l := range report.Lines {
		line := CashFlowLineResponse{AccountID: l.AccountID, Label: l.Label, Amount: l.Amount}
		switch l.Activity {
		case domain.ActivityInvesting:
			response.Investing.Lines = append(response.Investing.Lines, line)
		case domain.ActivityFinancing:
			response.Financing.Lines = append(response.Financing.Lines, line)
		default:
			response.Operating.Lines = append(response.Operating.Lines, line)
		}
	}
	return response
}

// ToTaxResponse converts a domain tax report to a DTO response
func ToTaxResponse(report *domain.TaxReport) TaxResponse {
	s := report.Summary
	response := TaxResponse{
		TaxType:  string(report.TaxType),
		Period:   toPeriod(report.PeriodStart, report.PeriodEnd),
		Warnings: report.Warnings,
	}
	switch report.TaxType {
	case domain.TaxGST:
		response.GST = &GSTResponse{
			TaxableSales:     s.TaxableSales,
			OutputTax:        s.OutputTax,
			TaxablePurchases: s.TaxablePurchases,
			InputTax:         s.InputTax,
			NetPayable:       s.NetPayable,
		}
	case domain.TaxIncomeTax:
		brackets := report.Brackets
		if brackets == nil {
			brackets = []domain.TaxBracketSlice{}
		}
		response.IncomeTax = &IncomeTaxResponse{
			GrossIncome:     s.GrossIncome,
			TotalDeductions: s.TotalDeductions,
			TaxableIncome:   s.TaxableIncome,
			TaxLiability:    s.TaxLiability,
			EffectiveRate:   s.EffectiveRate.StringFixed(2),
			Brackets:        brackets,
		}
	case domain.TaxTDS:
		response.TDS = &TDSResponse{TotalTDS: s.TotalTDS, EntryCount: s.TDSEntryCount}
	}
	return response
}

// ToReceivablesAgingResponse converts a domain aging report to a DTO response
func ToReceivablesAgingResponse(report *domain.ReceivablesAgingReport) ReceivablesAgingResponse {
	response := ReceivablesAgingResponse{
		AsOf:       report.AsOf.Format(DateLayout),
		Buckets:    report.Buckets,
		Rows:       make([]AgingRowResponse, len(report.Rows)),
		GrandTotal: report.GrandTotal,
	}
	for i, r := range report.Rows {
		var due *string
		if r.DueDate != nil {
			d := r.DueDate.Format(DateLayout)
			due = &d
		}
		response.Rows[i] = AgingRowResponse{
			InvoiceID:     r.InvoiceID,
			InvoiceNumber: r.InvoiceNumber,
			PartyID:       r.PartyID,
			PartyName:     r.PartyName,
			InvoiceDate:   r.InvoiceDate.Format(DateLayout),
			DueDate:       due,
			BalanceDue:    r.BalanceDue,
			DaysOverdue:   r.DaysOverdue,
			Bucket:        string(r.Bucket),
		}
	}
	return response
}
