package reports

import (
	"strings"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// humanize turns an enum value like COST_OF_GOODS_SOLD into "Cost Of Goods Sold".
// A Caser is stateful, so each call gets its own.
func humanize(raw string) string {
	words := strings.ReplaceAll(strings.ToLower(raw), "_", " ")
	return cases.Title(language.English).String(words)
}

// CategoryLabel is the display label for an account category.
func CategoryLabel(c domain.AccountCategory) string {
	return humanize(string(c))
}

// ActivityLabel is the display label for a cash flow activity.
func ActivityLabel(a domain.CashFlowActivity) string {
	return humanize(string(a)) + " Activities"
}

// ReferenceTypeLabel is the display label for a ledger reference type.
func ReferenceTypeLabel(r domain.ReferenceType) string {
	return humanize(string(r))
}

// BucketLabel is the display label for an aging bucket.
func BucketLabel(k domain.AgingBucketKey) string {
	switch k {
	case domain.BucketCurrent:
		return "Current (0-30 days)"
	case domain.Bucket31To60:
		return "31-60 days"
	case domain.Bucket61To90:
		return "61-90 days"
	case domain.BucketOver90:
		return "Over 90 days"
	default:
		return humanize(string(k))
	}
}

// FigureLabel is the display label for a summary figure key such as "net_income".
func FigureLabel(key string) string {
	return humanize(key)
}
