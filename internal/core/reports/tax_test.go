package reports

import (
	"testing"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeIncomeTax_DefaultSlabs(t *testing.T) {
	brackets := policy.DefaultIncomeTaxBrackets()
	tests := []struct {
		income string
		want   string
	}{
		{"200000", "0"},
		{"250000", "0"},
		{"400000", "7500"},
		{"700000", "52500"},
		{"1200000", "172500"},
		{"0", "0"},
		{"-50000", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got, _ := ComputeIncomeTax(dec(tt.income), brackets)
			assert.True(t, dec(tt.want).Equal(got), "income %s: got %s want %s", tt.income, got, tt.want)
		})
	}
}

func TestComputeIncomeTax_Slices(t *testing.T) {
	tax, slices := ComputeIncomeTax(dec("700000"), policy.DefaultIncomeTaxBrackets())

	require.Len(t, slices, 3)
	assert.True(t, dec("250000").Equal(slices[0].TaxableAmt))
	assert.True(t, dec("250000").Equal(slices[1].TaxableAmt))
	assert.True(t, dec("200000").Equal(slices[2].TaxableAmt))
	require.NotNil(t, slices[2].To)
	assert.True(t, dec("1000000").Equal(*slices[2].To))

	sum := decimal.Zero
	for _, s := range slices {
		sum = sum.Add(s.Tax)
	}
	assert.True(t, tax.Equal(sum))
}

func TestComputeIncomeTax_Monotonic(t *testing.T) {
	brackets := policy.DefaultIncomeTaxBrackets()
	step := decimal.NewFromInt(12345)
	prev := decimal.Zero
	for income := decimal.Zero; income.LessThan(decimal.NewFromInt(2500000)); income = income.Add(step) {
		got, _ := ComputeIncomeTax(income, brackets)
		require.False(t, got.LessThan(prev), "tax fell at income %s", income)
		prev = got
	}
}

func TestComputeIncomeTax_InjectedTable(t *testing.T) {
	flat := []domain.TaxBracket{
		{Threshold: dec("100"), Rate: dec("50")},
		{Threshold: decimal.Zero, Rate: dec("10")},
	}
	got, _ := ComputeIncomeTax(dec("300"), flat)
	assert.True(t, dec("110").Equal(got), "unsorted tables are applied in threshold order, got %s", got)
}

func taxEntries() []domain.LedgerEntry {
	sale := posted("2024-04-02", "sales", 0, 100000, domain.RefInvoice)
	sale.TaxAmount = dec("18000")
	sale.TDSAmount = dec("1000")
	paper := posted("2024-04-03", "paper", 40000, 0, domain.RefJobSheet)
	paper.TaxAmount = dec("7200")
	rent := posted("2024-04-04", "rent", 10000, 0, domain.RefPayment)
	rent.TaxAmount = dec("1800")
	rent.TDSAmount = dec("500")
	late := posted("2024-05-01", "sales", 0, 5000, domain.RefInvoice)
	late.TaxAmount = dec("900")
	late.TDSAmount = dec("50")
	return []domain.LedgerEntry{sale, paper, rent, late}
}

func TestBuildTax_GST(t *testing.T) {
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}
	r, err := BuildTax(domain.TaxGST, taxEntries(), chart(), filter, nil)
	require.NoError(t, err)

	s := r.Summary
	assert.True(t, dec("100000").Equal(s.TaxableSales))
	assert.True(t, dec("18000").Equal(s.OutputTax))
	assert.True(t, dec("50000").Equal(s.TaxablePurchases))
	assert.True(t, dec("9000").Equal(s.InputTax))
	assert.True(t, dec("9000").Equal(s.NetPayable))
}

func TestBuildTax_IncomeTax(t *testing.T) {
	entries := []domain.LedgerEntry{
		posted("2024-04-02", "sales", 0, 900000, domain.RefInvoice),
		posted("2024-04-03", "rent", 200000, 0, domain.RefPayment),
	}
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2025-03-31")}
	r, err := BuildTax(domain.TaxIncomeTax, entries, chart(), filter, policy.DefaultIncomeTaxBrackets())
	require.NoError(t, err)

	s := r.Summary
	assert.True(t, dec("900000").Equal(s.GrossIncome))
	assert.True(t, dec("200000").Equal(s.TotalDeductions))
	assert.True(t, dec("700000").Equal(s.TaxableIncome))
	assert.True(t, dec("52500").Equal(s.TaxLiability))
	assert.Equal(t, "7.50", s.EffectiveRate.StringFixed(2))
	assert.Len(t, r.Brackets, 3)
}

func TestBuildTax_IncomeTaxLoss(t *testing.T) {
	entries := []domain.LedgerEntry{
		posted("2024-04-02", "sales", 0, 1000, domain.RefInvoice),
		posted("2024-04-03", "rent", 5000, 0, domain.RefPayment),
	}
	r, err := BuildTax(domain.TaxIncomeTax, entries, chart(), accounting.AggregationFilter{}, policy.DefaultIncomeTaxBrackets())
	require.NoError(t, err)

	assert.True(t, dec("-4000").Equal(r.Summary.TaxableIncome))
	assert.True(t, r.Summary.TaxLiability.IsZero())
	assert.True(t, r.Summary.EffectiveRate.IsZero())
	assert.Empty(t, r.Brackets)
}

func TestBuildTax_TDS(t *testing.T) {
	filter := accounting.AggregationFilter{Start: day("2024-04-01"), End: day("2024-04-30")}
	r, err := BuildTax(domain.TaxTDS, taxEntries(), chart(), filter, nil)
	require.NoError(t, err)

	assert.True(t, dec("1500").Equal(r.Summary.TotalTDS))
	assert.Equal(t, 2, r.Summary.TDSEntryCount)
}

func TestBuildTax_UnknownType(t *testing.T) {
	_, err := BuildTax(domain.TaxType("VAT"), nil, chart(), accounting.AggregationFilter{}, nil)
	assert.Error(t, err)
}
