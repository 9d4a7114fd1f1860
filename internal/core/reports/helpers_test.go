package reports

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func posted(date, accountID string, debit, credit int64, ref domain.ReferenceType) domain.LedgerEntry {
	e := domain.LedgerEntry{
		EntryID:       date + "-" + accountID,
		EntryDate:     day(date),
		ReferenceType: ref,
		DebitAmount:   decimal.NewFromInt(debit),
		CreditAmount:  decimal.NewFromInt(credit),
		Status:        domain.EntryPosted,
	}
	if accountID != "" {
		e.AccountID = strPtr(accountID)
	}
	return e
}

// chart is a small printing-shop chart of accounts used across builder tests.
func chart() map[string]domain.Account {
	financing := domain.ActivityFinancing
	accounts := []domain.Account{
		{AccountID: "cash", Code: "1000", Name: "Cash in Hand", Category: domain.CategoryAsset, Subcategory: domain.SubcategoryCash},
		{AccountID: "recv", Code: "1100", Name: "Trade Receivables", Category: domain.CategoryAsset, Subcategory: domain.SubcategoryCurrentAsset},
		{AccountID: "press", Code: "1500", Name: "Offset Press", Category: domain.CategoryAsset, Subcategory: domain.SubcategoryFixedAsset},
		{AccountID: "deposit", Code: "1900", Name: "Security Deposit", Category: domain.CategoryAsset, Subcategory: domain.SubcategoryOtherAsset},
		{AccountID: "payable", Code: "2000", Name: "Paper Suppliers", Category: domain.CategoryLiability},
		{AccountID: "loan", Code: "2500", Name: "Bank Loan", Category: domain.CategoryLiability, Subcategory: domain.SubcategoryLongTermLiability},
		{AccountID: "capital", Code: "3000", Name: "Owner Capital", Category: domain.CategoryEquity},
		{AccountID: "sales", Code: "4000", Name: "Printing Sales", Category: domain.CategoryRevenue},
		{AccountID: "interest", Code: "4900", Name: "Interest Received", Category: domain.CategoryRevenue, Subcategory: domain.SubcategoryOtherIncome},
		{AccountID: "paper", Code: "5000", Name: "Paper & Ink", Category: domain.CategoryCostOfGoodsSold},
		{AccountID: "rent", Code: "6000", Name: "Rent", Category: domain.CategoryExpense},
		{AccountID: "fees", Code: "6900", Name: "Bank Charges", Category: domain.CategoryExpense, Subcategory: domain.SubcategoryOtherExpense},
		{AccountID: "drawings", Code: "3100", Name: "Drawings", Category: domain.CategoryEquity, CashFlowActivity: &financing},
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		a.IsActive = true
		out[a.AccountID] = a
	}
	return out
}
