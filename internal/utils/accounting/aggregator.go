package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregationFilter selects which entries take part in an aggregation.
// Start and End are inclusive calendar dates; a zero value leaves that side open.
// An empty Statuses slice means domain.ReportableStatuses; an empty ReferenceTypes
// slice means every reference type.
type AggregationFilter struct {
	Start          time.Time
	End            time.Time
	Statuses       []domain.EntryStatus
	ReferenceTypes []domain.ReferenceType
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Matches reports whether the entry passes the date, status and reference type checks.
func (f AggregationFilter) Matches(entry domain.LedgerEntry) bool {
	day := DateOnly(entry.EntryDate)
	if !f.Start.IsZero() && day.Before(DateOnly(f.Start)) {
		return false
	}
	if !f.End.IsZero() && day.After(DateOnly(f.End)) {
		return false
	}

	statuses := f.Statuses
	if len(statuses) == 0 {
		statuses = domain.ReportableStatuses
	}
	statusOK := false
	for _, s := range statuses {
		if entry.Status == s {
			statusOK = true
			break
		}
	}
	if !statusOK {
		return false
	}

	if len(f.ReferenceTypes) == 0 {
		return true
	}
	for _, rt := range f.ReferenceTypes {
		if entry.ReferenceType == rt {
			return true
		}
	}
	return false
}

// AccountTotals accumulates one account's activity.
type AccountTotals struct {
	Account domain.Account
	Debits  decimal.Decimal
	Credits decimal.Decimal
	Balance decimal.Decimal
	Entries int
}

// Aggregation is the result of bucketing ledger entries by category, account and
// reference type.
type Aggregation struct {
	ByCategory          map[domain.AccountCategory]decimal.Decimal
	ByAccount           map[string]*AccountTotals
	ByReferenceType     map[domain.ReferenceType]decimal.Decimal
	ReferenceTypeCounts map[domain.ReferenceType]int
	// EntryCount counts every matching entry, including ones left out of category totals.
	EntryCount        int
	UnassignedCount   int
	UnclassifiedCount int
	Warnings          []string
}

// NewAggregation returns an aggregation with every known category present at zero.
func NewAggregation() *Aggregation {
	agg := &Aggregation{
		ByCategory:          make(map[domain.AccountCategory]decimal.Decimal, len(domain.KnownCategories)),
		ByAccount:           make(map[string]*AccountTotals),
		ByReferenceType:     make(map[domain.ReferenceType]decimal.Decimal, len(domain.ReferenceTypes)),
		ReferenceTypeCounts: make(map[domain.ReferenceType]int, len(domain.ReferenceTypes)),
		Warnings:            []string{},
	}
	for _, c := range domain.KnownCategories {
		agg.ByCategory[c] = decimal.Zero
	}
	for _, rt := range domain.ReferenceTypes {
		agg.ByReferenceType[rt] = decimal.Zero
	}
	return agg
}

// Aggregate sums the entries that pass filter. Each entry's account is resolved from
// accounts; entries without an account count toward the raw reference type breakdown
// only, and entries on unclassified or unknown accounts are excluded from category
// totals with a warning.
func Aggregate(entries []domain.LedgerEntry, accounts map[string]domain.Account, filter AggregationFilter) *Aggregation {
	agg := NewAggregation()
	warned := make(map[string]bool)

	for _, entry := range entries {
		if !filter.Matches(entry) {
			continue
		}
		agg.EntryCount++
		agg.ByReferenceType[entry.ReferenceType] = agg.ByReferenceType[entry.ReferenceType].Add(entry.Amount())
		agg.ReferenceTypeCounts[entry.ReferenceType]++

		if entry.AccountID == nil || *entry.AccountID == "" {
			agg.UnassignedCount++
			continue
		}
		accountID := *entry.AccountID

		account, ok := accounts[accountID]
		if !ok {
			agg.UnclassifiedCount++
			if !warned[accountID] {
				warned[accountID] = true
				agg.Warnings = append(agg.Warnings, fmt.Sprintf("entries reference unknown account %s and were excluded from category totals", accountID))
			}
			continue
		}

		signed, classified := SignedEntryAmount(entry, account.Category)
		if !classified {
			agg.UnclassifiedCount++
			if !warned[accountID] {
				warned[accountID] = true
				agg.Warnings = append(agg.Warnings, fmt.Sprintf("account %s (%s) has unrecognised category %q and was excluded from category totals", account.Code, accountID, account.Category))
			}
			continue
		}

		agg.ByCategory[account.Category] = agg.ByCategory[account.Category].Add(signed)

		totals, exists := agg.ByAccount[accountID]
		if !exists {
			totals = &AccountTotals{Account: account}
			agg.ByAccount[accountID] = totals
		}
		totals.Debits = totals.Debits.Add(entry.DebitAmount)
		totals.Credits = totals.Credits.Add(entry.CreditAmount)
		totals.Balance = totals.Balance.Add(signed)
		totals.Entries++
	}

	return agg
}

// Total returns the signed total for a category, zero when nothing matched.
func (a *Aggregation) Total(category domain.AccountCategory) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return a.ByCategory[category]
}

// Accounts returns the per-account totals that satisfy keep, ordered by account code
// then ID so report output is stable.
func (a *Aggregation) Accounts(keep func(domain.Account) bool) []AccountTotals {
	if a == nil {
		return []AccountTotals{}
	}
	out := make([]AccountTotals, 0, len(a.ByAccount))
	for _, totals := range a.ByAccount {
		if keep == nil || keep(totals.Account) {
			out = append(out, *totals)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Account.Code != out[j].Account.Code {
			return out[i].Account.Code < out[j].Account.Code
		}
		return out[i].Account.AccountID < out[j].Account.AccountID
	})
	return out
}
