package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountAmount is an account and its signed balance within a statement.
type AccountAmount struct {
	AccountID   string             `json:"accountID"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Category    AccountCategory    `json:"category"`
	Subcategory AccountSubcategory `json:"subcategory,omitempty"`
	Amount      decimal.Decimal    `json:"amount"`
}

// ProfitLossSummary holds the headline figures of a profit and loss statement.
type ProfitLossSummary struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CostOfGoodsSold   decimal.Decimal `json:"costOfGoodsSold"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	OperatingIncome   decimal.Decimal `json:"operatingIncome"`
	OtherIncome       decimal.Decimal `json:"otherIncome"`
	OtherExpenses     decimal.Decimal `json:"otherExpenses"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	GrossProfitMargin decimal.Decimal `json:"grossProfitMargin"`
	NetProfitMargin   decimal.Decimal `json:"netProfitMargin"`
}

// ProfitLossReport is a profit and loss statement for a closed period.
type ProfitLossReport struct {
	PeriodStart   time.Time         `json:"periodStart"`
	PeriodEnd     time.Time         `json:"periodEnd"`
	Summary       ProfitLossSummary `json:"summary"`
	Revenue       []AccountAmount   `json:"revenue"`
	CostOfSales   []AccountAmount   `json:"costOfSales"`
	Expenses      []AccountAmount   `json:"expenses"`
	OtherIncome   []AccountAmount   `json:"otherIncome"`
	OtherExpenses []AccountAmount   `json:"otherExpenses"`
	Warnings      []string          `json:"warnings,omitempty"`
}

// BalanceSheetSummary holds the headline figures of a balance sheet.
type BalanceSheetSummary struct {
	CurrentAssets       decimal.Decimal `json:"currentAssets"`
	FixedAssets         decimal.Decimal `json:"fixedAssets"`
	OtherAssets         decimal.Decimal `json:"otherAssets"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	CurrentLiabilities  decimal.Decimal `json:"currentLiabilities"`
	LongTermLiabilities decimal.Decimal `json:"longTermLiabilities"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	OwnersEquity        decimal.Decimal `json:"ownersEquity"`
	RetainedEarnings    decimal.Decimal `json:"retainedEarnings"`
	TotalEquity         decimal.Decimal `json:"totalEquity"`
	BalanceDifference   decimal.Decimal `json:"balanceDifference"`
	IsBalanced          bool            `json:"isBalanced"`
}

// BalanceSheetReport is a balance sheet as of a single date.
type BalanceSheetReport struct {
	AsOf                time.Time           `json:"asOf"`
	Summary             BalanceSheetSummary `json:"summary"`
	CurrentAssets       []AccountAmount     `json:"currentAssets"`
	FixedAssets         []AccountAmount     `json:"fixedAssets"`
	OtherAssets         []AccountAmount     `json:"otherAssets"`
	CurrentLiabilities  []AccountAmount     `json:"currentLiabilities"`
	LongTermLiabilities []AccountAmount     `json:"longTermLiabilities"`
	Equity              []AccountAmount     `json:"equity"`
	Warnings            []string            `json:"warnings,omitempty"`
}

// CashFlowLine is one labelled movement within a cash flow activity.
type CashFlowLine struct {
	Activity  CashFlowActivity `json:"activity"`
	AccountID *string          `json:"accountID,omitempty"`
	Label     string           `json:"label"`
	Amount    decimal.Decimal  `json:"amount"`
}

// CashFlowSummary holds the headline figures of a cash flow statement.
type CashFlowSummary struct {
	BeginningCash decimal.Decimal `json:"beginningCash"`
	Operating     decimal.Decimal `json:"operating"`
	Investing     decimal.Decimal `json:"investing"`
	Financing     decimal.Decimal `json:"financing"`
	NetChange     decimal.Decimal `json:"netChange"`
	EndingCash    decimal.Decimal `json:"endingCash"`
}

// CashFlowReport is a cash flow statement for a closed period.
type CashFlowReport struct {
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Summary     CashFlowSummary `json:"summary"`
	Lines       []CashFlowLine  `json:"lines"`
	Warnings    []string        `json:"warnings,omitempty"`
}

// TaxBracket applies Rate (a percentage) to the part of income above Threshold and up to
// the next bracket's threshold.
type TaxBracket struct {
	Threshold decimal.Decimal `json:"threshold"`
	Rate      decimal.Decimal `json:"rate"`
}

// TaxBracketSlice is the tax charged within one bracket.
type TaxBracketSlice struct {
	From       decimal.Decimal  `json:"from"`
	To         *decimal.Decimal `json:"to,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
	TaxableAmt decimal.Decimal  `json:"taxableAmount"`
	Tax        decimal.Decimal  `json:"tax"`
}

// TaxSummary holds the figures of a tax report. Only the fields for the report's TaxType
// are populated; the rest stay zero.
type TaxSummary struct {
	TaxableSales     decimal.Decimal `json:"taxableSales"`
	OutputTax        decimal.Decimal `json:"outputTax"`
	TaxablePurchases decimal.Decimal `json:"taxablePurchases"`
	InputTax         decimal.Decimal `json:"inputTax"`
	NetPayable       decimal.Decimal `json:"netPayable"`
	GrossIncome      decimal.Decimal `json:"grossIncome"`
	TotalDeductions  decimal.Decimal `json:"totalDeductions"`
	TaxableIncome    decimal.Decimal `json:"taxableIncome"`
	TaxLiability     decimal.Decimal `json:"taxLiability"`
	EffectiveRate    decimal.Decimal `json:"effectiveRate"`
	TotalTDS         decimal.Decimal `json:"totalTDS"`
	TDSEntryCount    int             `json:"tdsEntryCount"`
}

// TaxReport is a tax computation for a closed period.
type TaxReport struct {
	TaxType     TaxType           `json:"taxType"`
	PeriodStart time.Time         `json:"periodStart"`
	PeriodEnd   time.Time         `json:"periodEnd"`
	Summary     TaxSummary        `json:"summary"`
	Brackets    []TaxBracketSlice `json:"brackets,omitempty"`
	Warnings    []string          `json:"warnings,omitempty"`
}

// AgingBucketKey names a days-overdue range.
type AgingBucketKey string

const (
	BucketCurrent AgingBucketKey = "CURRENT"
	Bucket31To60  AgingBucketKey = "DAYS_31_60"
	Bucket61To90  AgingBucketKey = "DAYS_61_90"
	BucketOver90  AgingBucketKey = "OVER_90"
)

// AgingBucketKeys lists the buckets from youngest to oldest.
var AgingBucketKeys = []AgingBucketKey{BucketCurrent, Bucket31To60, Bucket61To90, BucketOver90}

// AgingBucket sums the unpaid balances that fall into one days-overdue range.
type AgingBucket struct {
	Key   AgingBucketKey  `json:"key"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// AgingRow is an unpaid invoice placed into its bucket.
type AgingRow struct {
	Invoice
	DaysOverdue int            `json:"daysOverdue"`
	Bucket      AgingBucketKey `json:"bucket"`
}

// ReceivablesAgingReport groups all currently unpaid invoices by age.
type ReceivablesAgingReport struct {
	AsOf       time.Time       `json:"asOf"`
	Buckets    []AgingBucket   `json:"buckets"`
	Rows       []AgingRow      `json:"rows"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}
