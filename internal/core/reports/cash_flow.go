package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var activityOrder = map[domain.CashFlowActivity]int{
	domain.ActivityOperating: 0,
	domain.ActivityInvesting: 1,
	domain.ActivityFinancing: 2,
}

// ClassifyActivity picks the cash flow section for an entry. An explicit tag on the
// account wins, then the account's category and subcategory, then the reference type
// mapping from the policy. account may be nil.
func ClassifyActivity(account *domain.Account, ref domain.ReferenceType, cf policy.CashFlowPolicy) domain.CashFlowActivity {
	if account != nil {
		if account.CashFlowActivity != nil && *account.CashFlowActivity != "" {
			return *account.CashFlowActivity
		}
		switch {
		case account.Subcategory == domain.SubcategoryFixedAsset:
			return domain.ActivityInvesting
		case account.Subcategory == domain.SubcategoryLongTermLiability, account.Category == domain.CategoryEquity:
			return domain.ActivityFinancing
		case account.Category == domain.CategoryRevenue,
			account.Category == domain.CategoryExpense,
			account.Category == domain.CategoryCostOfGoodsSold:
			return domain.ActivityOperating
		}
	}
	return cf.ActivityFor(ref)
}

// CashEffect is the movement in cash recorded by one entry: debit less credit on a
// cash account, zero on any other account.
func CashEffect(entry domain.LedgerEntry, account *domain.Account) decimal.Decimal {
	if account == nil || !account.IsCash() {
		return decimal.Zero
	}
	return entry.DebitAmount.Sub(entry.CreditAmount)
}

// BeginningCash sums debit - credit over reportable entries on cash accounts dated
// strictly before start.
func BeginningCash(entries []domain.LedgerEntry, accounts map[string]domain.Account, start time.Time, statuses []domain.EntryStatus) decimal.Decimal {
	total := decimal.Zero
	if start.IsZero() {
		return total
	}
	before := accounting.AggregationFilter{End: accounting.DateOnly(start).AddDate(0, 0, -1), Statuses: statuses}
	for _, e := range entries {
		if !before.Matches(e) || e.AccountID == nil {
			continue
		}
		if a, ok := accounts[*e.AccountID]; ok {
			total = total.Add(CashEffect(e, &a))
		}
	}
	return total
}

type eventKey struct {
	ref domain.ReferenceType
	id  string
}

func eventOf(e domain.LedgerEntry) (eventKey, bool) {
	if e.ReferenceID == nil || *e.ReferenceID == "" {
		return eventKey{}, false
	}
	return eventKey{ref: e.ReferenceType, id: *e.ReferenceID}, true
}

// counterparts maps each business event to the first non-cash account it touched, so the
// cash side of the event can be classified by what the cash paid for or came from.
func counterparts(entries []domain.LedgerEntry, accounts map[string]domain.Account, filter accounting.AggregationFilter) map[eventKey]domain.Account {
	out := make(map[eventKey]domain.Account)
	for _, e := range entries {
		if !filter.Matches(e) || e.AccountID == nil {
			continue
		}
		key, ok := eventOf(e)
		if !ok {
			continue
		}
		a, ok := accounts[*e.AccountID]
		if !ok || a.IsCash() || !a.Category.IsClassified() {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = a
		}
	}
	return out
}

type cashLineKey struct {
	activity  domain.CashFlowActivity
	accountID string
	ref       domain.ReferenceType
}

// BuildCashFlow totals the movement on cash accounts in the period by activity. Each cash
// entry is classified through the non-cash account sharing its reference, falling back to
// the cash account's own tag and then the reference type. priorEntries supplies the
// history used for the beginning balance and may overlap entries; only entries dated
// before filter.Start are counted from it. Beginning and ending cash therefore agree with
// the cash accounts on the balance sheet.
func BuildCashFlow(entries, priorEntries []domain.LedgerEntry, accounts map[string]domain.Account, filter accounting.AggregationFilter, cf policy.CashFlowPolicy) domain.CashFlowReport {
	report := domain.CashFlowReport{
		PeriodStart: filter.Start,
		PeriodEnd:   filter.End,
		Lines:       []domain.CashFlowLine{},
		Warnings:    []string{},
	}

	sources := counterparts(entries, accounts, filter)
	lines := make(map[cashLineKey]*domain.CashFlowLine)
	warned := make(map[string]bool)
	var s domain.CashFlowSummary

	for _, e := range entries {
		if !filter.Matches(e) || e.AccountID == nil || *e.AccountID == "" {
			continue
		}
		cash, ok := accounts[*e.AccountID]
		if !ok || !cash.Category.IsClassified() {
			if !warned[*e.AccountID] {
				warned[*e.AccountID] = true
				report.Warnings = append(report.Warnings, fmt.Sprintf("account %s is unknown or unclassified; its entries were left out of the cash flow", *e.AccountID))
			}
			continue
		}
		if !cash.IsCash() {
			continue
		}
		effect := CashEffect(e, &cash)

		source := &cash
		key := cashLineKey{ref: e.ReferenceType}
		if ev, ok := eventOf(e); ok {
			if cp, ok := sources[ev]; ok {
				source = &cp
				key.accountID = cp.AccountID
				key.ref = ""
			}
		}
		activity := ClassifyActivity(source, e.ReferenceType, cf)
		key.activity = activity

		line, ok := lines[key]
		if !ok {
			line = &domain.CashFlowLine{Activity: activity}
			if key.accountID != "" {
				id := key.accountID
				line.AccountID = &id
				line.Label = source.Name
			} else {
				line.Label = ReferenceTypeLabel(e.ReferenceType)
			}
			lines[key] = line
		}
		line.Amount = line.Amount.Add(effect)

		switch activity {
		case domain.ActivityInvesting:
			s.Investing = s.Investing.Add(effect)
		case domain.ActivityFinancing:
			s.Financing = s.Financing.Add(effect)
		default:
			s.Operating = s.Operating.Add(effect)
		}
	}

	s.BeginningCash = BeginningCash(priorEntries, accounts, filter.Start, filter.Statuses)
	s.NetChange = s.Operating.Add(s.Investing).Add(s.Financing)
	s.EndingCash = s.BeginningCash.Add(s.NetChange)
	report.Summary = s

	for _, l := range lines {
		report.Lines = append(report.Lines, *l)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		a, b := report.Lines[i], report.Lines[j]
		if a.Activity != b.Activity {
			return activityOrder[a.Activity] < activityOrder[b.Activity]
		}
		if a.Label != b.Label {
			return a.Label < b.Label
		}
		return a.AccountID != nil && (b.AccountID == nil || *a.AccountID < *b.AccountID)
	})
	return report
}
