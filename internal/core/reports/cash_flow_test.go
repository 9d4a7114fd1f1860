package reports

import (
	"testing"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyActivity(t *testing.T) {
	accounts := chart()
	cf := policy.Default().CashFlow
	acct := func(id string) *domain.Account {
		a := accounts[id]
		return &a
	}

	tests := []struct {
		name    string
		account *domain.Account
		ref     domain.ReferenceType
		want    domain.CashFlowActivity
	}{
		{"explicit tag wins over category", acct("drawings"), domain.RefPayment, domain.ActivityFinancing},
		{"fixed asset is investing", acct("press"), domain.RefPayment, domain.ActivityInvesting},
		{"long term liability is financing", acct("loan"), domain.RefPayment, domain.ActivityFinancing},
		{"equity is financing", acct("capital"), domain.RefPayment, domain.ActivityFinancing},
		{"revenue is operating even on a transfer", acct("sales"), domain.RefTransfer, domain.ActivityOperating},
		{"current asset falls back to reference type", acct("recv"), domain.RefTransfer, domain.ActivityFinancing},
		{"no account uses reference type", nil, domain.RefTransfer, domain.ActivityFinancing},
		{"no account defaults to operating", nil, domain.RefPartyTransaction, domain.ActivityOperating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyActivity(tt.account, tt.ref, cf))
		})
	}
}

func TestClassifyActivity_PolicyOverride(t *testing.T) {
	cf := policy.CashFlowPolicy{
		DefaultActivity: domain.ActivityOperating,
		ByReferenceType: map[domain.ReferenceType]domain.CashFlowActivity{domain.RefAdjustment: domain.ActivityInvesting},
	}
	assert.Equal(t, domain.ActivityInvesting, ClassifyActivity(nil, domain.RefAdjustment, cf))
	assert.Equal(t, domain.ActivityOperating, ClassifyActivity(nil, domain.RefTransfer, cf))
}

func event(e domain.LedgerEntry, referenceID string) domain.LedgerEntry {
	e.ReferenceID = strPtr(referenceID)
	return e
}

func TestCashEffect(t *testing.T) {
	accounts := chart()
	cash, sales := accounts["cash"], accounts["sales"]

	assert.True(t, dec("250").Equal(CashEffect(posted("2024-04-02", "cash", 300, 50, domain.RefPayment), &cash)))
	assert.True(t, CashEffect(posted("2024-04-02", "sales", 0, 300, domain.RefInvoice), &sales).IsZero())
	assert.True(t, CashEffect(posted("2024-04-02", "", 0, 300, domain.RefInvoice), nil).IsZero())
}

func TestBuildCashFlow(t *testing.T) {
	period := []domain.LedgerEntry{
		event(posted("2024-04-02", "cash", 30000, 0, domain.RefInvoice), "inv-1"),
		event(posted("2024-04-02", "sales", 0, 30000, domain.RefInvoice), "inv-1"),
		event(posted("2024-04-05", "rent", 5000, 0, domain.RefPayment), "pay-2"),
		event(posted("2024-04-05", "cash", 0, 5000, domain.RefPayment), "pay-2"),
		event(posted("2024-04-06", "cash", 0, 80000, domain.RefPayment), "pay-3"),
		event(posted("2024-04-06", "press", 80000, 0, domain.RefPayment), "pay-3"),
		event(posted("2024-04-08", "cash", 100000, 0, domain.RefTransfer), "loan-1"),
		event(posted("2024-04-08", "loan", 0, 100000, domain.RefTransfer), "loan-1"),
		event(posted("2024-04-09", "drawings", 2000, 0, domain.RefPayment), "pay-4"),
		event(posted("2024-04-09", "cash", 0, 2000, domain.RefPayment), "pay-4"),
		posted("2024-04-10", "cash", 400, 0, domain.RefPartyTransaction),
		posted("2024-04-11", "cash", 0, 1000, domain.RefTransfer),
		event(posted("2024-04-12", "recv", 700, 0, domain.RefInvoice), "inv-2"),
		event(posted("2024-04-12", "sales", 0, 700, domain.RefInvoice), "inv-2"),
	}
	pending := event(posted("2024-04-13", "cash", 99999, 0, domain.RefInvoice), "inv-3")
	pending.Status = domain.EntryPending
	period = append(period, pending)

	prior := []domain.LedgerEntry{
		event(posted("2024-03-15", "cash", 10000, 0, domain.RefTransfer), "cap-1"),
		event(posted("2024-03-15", "capital", 0, 10000, domain.RefTransfer), "cap-1"),
		event(posted("2024-03-20", "cash", 0, 2500, domain.RefPayment), "pay-1"),
		event(posted("2024-03-20", "rent", 2500, 0, domain.RefPayment), "pay-1"),
		posted("2024-04-01", "cash", 999, 0, domain.RefTransfer),
	}

	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}
	r := BuildCashFlow(period, prior, chart(), filter, policy.Default().CashFlow)
	s := r.Summary

	assert.True(t, dec("7500").Equal(s.BeginningCash), "beginning %s", s.BeginningCash)
	assert.True(t, dec("25400").Equal(s.Operating), "operating %s", s.Operating)
	assert.True(t, dec("-80000").Equal(s.Investing), "investing %s", s.Investing)
	assert.True(t, dec("97000").Equal(s.Financing), "financing %s", s.Financing)
	assert.True(t, dec("42400").Equal(s.NetChange))
	assert.True(t, s.BeginningCash.Add(s.NetChange).Equal(s.EndingCash))
	assert.True(t, dec("49900").Equal(s.EndingCash))
	assert.Empty(t, r.Warnings)

	require.NotEmpty(t, r.Lines)
	assert.Equal(t, domain.ActivityOperating, r.Lines[0].Activity)
	assert.Equal(t, domain.ActivityFinancing, r.Lines[len(r.Lines)-1].Activity)

	byLabel := map[string]domain.CashFlowLine{}
	for _, l := range r.Lines {
		byLabel[l.Label] = l
	}
	assert.Contains(t, byLabel, "Party Transaction", "cash entries without a counterpart are labelled by reference type")
	require.Contains(t, byLabel, "Offset Press")
	assert.Equal(t, domain.ActivityInvesting, byLabel["Offset Press"].Activity)
	assert.True(t, dec("-80000").Equal(byLabel["Offset Press"].Amount))
	require.Contains(t, byLabel, "Printing Sales")
	assert.True(t, dec("30000").Equal(byLabel["Printing Sales"].Amount), "a credit sale with no cash leg moves no cash")
}

func TestBuildCashFlow_EndingCashCarriesIntoNextPeriod(t *testing.T) {
	ledger := []domain.LedgerEntry{
		event(posted("2024-01-10", "cash", 100, 0, domain.RefInvoice), "inv-1"),
		event(posted("2024-01-10", "sales", 0, 100, domain.RefInvoice), "inv-1"),
		event(posted("2024-01-20", "rent", 30, 0, domain.RefPayment), "pay-1"),
		event(posted("2024-01-20", "cash", 0, 30, domain.RefPayment), "pay-1"),
		event(posted("2024-01-25", "sales", 0, 500, domain.RefInvoice), "inv-2"),
		event(posted("2024-02-05", "cash", 50, 0, domain.RefInvoice), "inv-3"),
		event(posted("2024-02-05", "sales", 0, 50, domain.RefInvoice), "inv-3"),
	}
	cf := policy.Default().CashFlow
	accounts := chart()

	jan := BuildCashFlow(ledger, ledger, accounts, accounting.AggregationFilter{Start: day("2024-01-01"), End: day("2024-01-31")}, cf)
	feb := BuildCashFlow(ledger, ledger, accounts, accounting.AggregationFilter{Start: day("2024-02-01"), End: day("2024-02-29")}, cf)

	assert.True(t, jan.Summary.BeginningCash.IsZero())
	assert.True(t, dec("70").Equal(jan.Summary.EndingCash), "january ending %s", jan.Summary.EndingCash)
	assert.True(t, jan.Summary.EndingCash.Equal(feb.Summary.BeginningCash),
		"january ending %s, february beginning %s", jan.Summary.EndingCash, feb.Summary.BeginningCash)
	assert.True(t, dec("120").Equal(feb.Summary.EndingCash))
	assert.True(t, BeginningCash(ledger, accounts, day("2024-03-01"), nil).Equal(feb.Summary.EndingCash),
		"ending cash matches the cash account balance at period end")
}

func TestBuildCashFlow_CashAccountEntries(t *testing.T) {
	entries := []domain.LedgerEntry{
		posted("2024-04-02", "cash", 1200, 0, domain.RefPayment),
		posted("2024-04-03", "cash", 0, 200, domain.RefTransfer),
	}
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}

	r := BuildCashFlow(entries, entries, chart(), filter, policy.Default().CashFlow)

	assert.True(t, dec("1200").Equal(r.Summary.Operating))
	assert.True(t, dec("-200").Equal(r.Summary.Financing))
	assert.True(t, r.Summary.BeginningCash.IsZero())
}

func TestBuildCashFlow_NonCashEntriesMoveNothing(t *testing.T) {
	entries := []domain.LedgerEntry{
		posted("2024-04-02", "sales", 0, 100, domain.RefInvoice),
		posted("2024-04-03", "rent", 40, 0, domain.RefPayment),
	}
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}

	r := BuildCashFlow(entries, entries, chart(), filter, policy.Default().CashFlow)

	assert.True(t, r.Summary.NetChange.IsZero())
	assert.Empty(t, r.Lines)
}

func TestBuildCashFlow_Empty(t *testing.T) {
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}
	r := BuildCashFlow(nil, nil, chart(), filter, policy.Default().CashFlow)

	assert.True(t, r.Summary.NetChange.IsZero())
	assert.True(t, r.Summary.EndingCash.IsZero())
	assert.NotNil(t, r.Lines)
	assert.Empty(t, r.Warnings)
}

func TestBuildCashFlow_UnknownAccountWarns(t *testing.T) {
	entries := []domain.LedgerEntry{
		posted("2024-04-02", "ghost", 0, 300, domain.RefTransfer),
		posted("2024-04-03", "ghost", 0, 100, domain.RefTransfer),
		posted("2024-04-03", "cash", 100, 0, domain.RefTransfer),
	}
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}

	r := BuildCashFlow(entries, nil, chart(), filter, policy.Default().CashFlow)

	assert.Len(t, r.Warnings, 1)
	assert.True(t, dec("100").Equal(r.Summary.Financing))
}
