package services_test

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, time.May, 31, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func entry(id string, date time.Time, accountID string, debit, credit, tax int64, ref domain.ReferenceType, status domain.EntryStatus) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       id,
		EntryDate:     date,
		ReferenceType: ref,
		AccountID:     strPtr(accountID),
		DebitAmount:   decimal.NewFromInt(debit),
		CreditAmount:  decimal.NewFromInt(credit),
		TaxAmount:     decimal.NewFromInt(tax),
		Status:        status,
	}
}

func testAccounts() map[string]domain.Account {
	accounts := []domain.Account{
		{AccountID: "cash", Code: "1000", Name: "Cash in Hand", Category: domain.CategoryAsset, Subcategory: domain.SubcategoryCash, IsActive: true},
		{AccountID: "capital", Code: "3000", Name: "Owner Capital", Category: domain.CategoryEquity, IsActive: true},
		{AccountID: "sales", Code: "4000", Name: "Printing Sales", Category: domain.CategoryRevenue, IsActive: true},
		{AccountID: "paper", Code: "5000", Name: "Paper and Ink", Category: domain.CategoryCostOfGoodsSold, IsActive: true},
		{AccountID: "rent", Code: "6000", Name: "Shop Rent", Category: domain.CategoryExpense, IsActive: true},
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out
}

// testLedger has one month of trading in April 2025 plus opening entries in March.
func testLedger() *fakeLedgerStore {
	return &fakeLedgerStore{
		accounts: testAccounts(),
		entries: []domain.LedgerEntry{
			entry("e1", day(2025, time.March, 1), "capital", 0, 50000, 0, domain.RefAdjustment, domain.EntryPosted),
			entry("e2", day(2025, time.March, 2), "cash", 2000, 0, 0, domain.RefPayment, domain.EntryPosted),
			entry("e3", day(2025, time.April, 5), "sales", 0, 10000, 1800, domain.RefInvoice, domain.EntryPosted),
			entry("e4", day(2025, time.April, 10), "paper", 4000, 0, 720, domain.RefJobSheet, domain.EntryApproved),
			entry("e5", day(2025, time.April, 15), "rent", 1000, 0, 0, domain.RefPayment, domain.EntryPosted),
			entry("e6", day(2025, time.April, 20), "sales", 0, 999, 0, domain.RefInvoice, domain.EntryPending),
		},
		invoices: []domain.Invoice{
			{InvoiceID: "i1", InvoiceNumber: "INV-001", PartyName: "Sri Lakshmi Traders", DueDate: ptrTime(day(2025, time.May, 20)), BalanceDue: decimal.NewFromInt(100), Status: domain.InvoiceUnpaid},
			{InvoiceID: "i2", InvoiceNumber: "INV-002", PartyName: "Kaveri Textiles", DueDate: ptrTime(day(2025, time.March, 1)), BalanceDue: decimal.NewFromInt(200), Status: domain.InvoicePartiallyPaid},
		},
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
