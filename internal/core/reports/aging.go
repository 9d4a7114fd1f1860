package reports

import (
	"sort"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DaysOverdue returns whole calendar days between due and today. A missing due date
// or one not yet passed gives zero.
func DaysOverdue(due *time.Time, today time.Time) int {
	if due == nil {
		return 0
	}
	days := int(accounting.DateOnly(today).Sub(accounting.DateOnly(*due)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// BucketFor places a days-overdue count into its aging bucket.
func BucketFor(days int) domain.AgingBucketKey {
	switch {
	case days <= 30:
		return domain.BucketCurrent
	case days <= 60:
		return domain.Bucket31To60
	case days <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}

// BuildReceivablesAging buckets the unpaid invoices by how far past due they are on
// today. Paid or cancelled invoices are ignored. Rows are ordered by due date with
// undated invoices last.
func BuildReceivablesAging(invoices []domain.Invoice, today time.Time) domain.ReceivablesAgingReport {
	report := domain.ReceivablesAgingReport{
		AsOf:       accounting.DateOnly(today),
		Buckets:    make([]domain.AgingBucket, 0, len(domain.AgingBucketKeys)),
		Rows:       []domain.AgingRow{},
		GrandTotal: decimal.Zero,
	}
	index := make(map[domain.AgingBucketKey]int, len(domain.AgingBucketKeys))
	for i, key := range domain.AgingBucketKeys {
		index[key] = i
		report.Buckets = append(report.Buckets, domain.AgingBucket{Key: key, Label: BucketLabel(key), Total: decimal.Zero})
	}

	for _, inv := range invoices {
		if !inv.IsUnpaid() {
			continue
		}
		days := DaysOverdue(inv.DueDate, today)
		key := BucketFor(days)
		b := &report.Buckets[index[key]]
		b.Count++
		b.Total = b.Total.Add(inv.BalanceDue)
		report.GrandTotal = report.GrandTotal.Add(inv.BalanceDue)
		report.Rows = append(report.Rows, domain.AgingRow{Invoice: inv, DaysOverdue: days, Bucket: key})
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		a, b := report.Rows[i].DueDate, report.Rows[j].DueDate
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return report.Rows[i].InvoiceNumber < report.Rows[j].InvoiceNumber
	})
	return report
}
