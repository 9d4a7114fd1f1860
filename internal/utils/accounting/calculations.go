package accounting

import (
	"fmt"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IsDebitNormal reports whether balances in the category grow with debits.
// The second return value is false for an unclassified category.
//
// DEBIT-normal:  ASSET, EXPENSE, COST_OF_GOODS_SOLD -> balance = debits - credits
// CREDIT-normal: LIABILITY, EQUITY, REVENUE         -> balance = credits - debits
func IsDebitNormal(category domain.AccountCategory) (bool, bool) {
	switch category {
	case domain.CategoryAsset, domain.CategoryExpense, domain.CategoryCostOfGoodsSold:
		return true, true
	case domain.CategoryLiability, domain.CategoryEquity, domain.CategoryRevenue:
		return false, true
	default:
		return false, false
	}
}

// SignedBalance applies the category's sign convention to debit and credit totals.
// An unclassified category contributes zero and reports ok=false so callers can warn.
func SignedBalance(category domain.AccountCategory, debits, credits decimal.Decimal) (decimal.Decimal, bool) {
	debitNormal, ok := IsDebitNormal(category)
	if !ok {
		return decimal.Zero, false
	}
	if debitNormal {
		return debits.Sub(credits), true
	}
	return credits.Sub(debits), true
}

// SignedEntryAmount is SignedBalance for a single ledger entry.
func SignedEntryAmount(entry domain.LedgerEntry, category domain.AccountCategory) (decimal.Decimal, bool) {
	return SignedBalance(category, entry.DebitAmount, entry.CreditAmount)
}

// ValidateEntryAmounts checks the single-sided invariant: exactly one of debit/credit is
// strictly positive and the other is exactly zero. Tax and TDS amounts may not be negative.
func ValidateEntryAmounts(entry domain.LedgerEntry) error {
	if entry.DebitAmount.IsNegative() || entry.CreditAmount.IsNegative() {
		return fmt.Errorf("debit and credit amounts must not be negative")
	}
	if !entry.IsSingleSided() {
		return fmt.Errorf("exactly one of debit (%s) or credit (%s) must be positive and the other zero",
			entry.DebitAmount.String(), entry.CreditAmount.String())
	}
	if entry.TaxAmount.IsNegative() {
		return fmt.Errorf("tax amount must not be negative")
	}
	if entry.TDSAmount.IsNegative() {
		return fmt.Errorf("tds amount must not be negative")
	}
	return nil
}
