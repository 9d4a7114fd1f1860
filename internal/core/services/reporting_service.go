package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/core/reports"
	"github.com/ganpathioverseas/erp_finance/internal/observability"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	store      portsrepo.LedgerStore
	reportRepo portsrepo.ReportRepositoryFacade
	cache      portsrepo.ReportCache
	metrics    *observability.Metrics
	policy     *policy.Policy
	now        func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the role authorizer for the reporting service.
func WithReportingAuthorizer(authorizer portssvc.RoleAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.RoleAuthorizer = authorizer
	}
}

// WithReportCache caches on-demand statements.
func WithReportCache(cache portsrepo.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// WithReportMetrics records generation timings and cache lookups.
func WithReportMetrics(metrics *observability.Metrics) ReportingServiceOption {
	return func(s *reportingService) {
		s.metrics = metrics
	}
}

// WithFinancePolicy replaces the built-in tax brackets, tolerance and cash flow mapping.
func WithFinancePolicy(p *policy.Policy) ReportingServiceOption {
	return func(s *reportingService) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithReportingClock overrides the clock used for aging and audit timestamps.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(store portsrepo.LedgerStore, reportRepo portsrepo.ReportRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		store:      store,
		reportRepo: reportRepo,
		policy:     policy.Default(),
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validatePeriod(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("period start and end are required: %w", apperrors.ErrValidation)
	}
	if accounting.DateOnly(to).Before(accounting.DateOnly(from)) {
		return fmt.Errorf("period end %s is before period start %s: %w",
			to.Format(dateKey), from.Format(dateKey), apperrors.ErrValidation)
	}
	return nil
}

const dateKey = "2006-01-02"

// cachedStatement runs load through the report cache. Cache failures fall back to a direct load.
func cachedStatement[T any](ctx context.Context, s *reportingService, load func(context.Context) (T, error), parts ...string) (*T, error) {
	if s.cache == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	key, err := s.cache.Key(ctx, parts...)
	if err == nil {
		var out T
		var loadErr error
		var hit bool
		hit, err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
			v, err := load(ctx)
			loadErr = err
			return v, err
		})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if loadErr != nil {
			return nil, loadErr
		}
		if err == nil {
			if hit {
				s.metrics.CacheHit()
			} else {
				s.metrics.CacheMiss()
			}
			return &out, nil
		}
	}
	s.LogError(ctx, err, "Report cache unavailable, building statement directly", slog.Any("key_parts", parts))
	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time, userID string) (*domain.ProfitLossReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return cachedStatement(ctx, s, func(ctx context.Context) (domain.ProfitLossReport, error) {
		return s.buildProfitLoss(ctx, from, to)
	}, "pl", from.Format(dateKey), to.Format(dateKey))
}

func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		return nil, fmt.Errorf("as-of date is required: %w", apperrors.ErrValidation)
	}
	return cachedStatement(ctx, s, func(ctx context.Context) (domain.BalanceSheetReport, error) {
		return s.buildBalanceSheet(ctx, asOf)
	}, "bs", asOf.Format(dateKey))
}

func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time, userID string) (*domain.CashFlowReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return cachedStatement(ctx, s, func(ctx context.Context) (domain.CashFlowReport, error) {
		return s.buildCashFlow(ctx, from, to)
	}, "cf", from.Format(dateKey), to.Format(dateKey))
}

func (s *reportingService) Tax(ctx context.Context, taxType domain.TaxType, from, to time.Time, userID string) (*domain.TaxReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if !taxType.IsValid() {
		return nil, fmt.Errorf("unknown tax type %q: %w", taxType, apperrors.ErrValidation)
	}
	if err := validatePeriod(from, to); err != nil {
		return nil, err
	}
	return cachedStatement(ctx, s, func(ctx context.Context) (domain.TaxReport, error) {
		return s.buildTax(ctx, taxType, from, to)
	}, "tax", string(taxType), from.Format(dateKey), to.Format(dateKey))
}

func (s *reportingService) ReceivablesAging(ctx context.Context, userID string) (*domain.ReceivablesAgingReport, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	today := accounting.DateOnly(s.now())
	return cachedStatement(ctx, s, func(ctx context.Context) (domain.ReceivablesAgingReport, error) {
		return s.buildReceivablesAging(ctx, today)
	}, "aging", today.Format(dateKey))
}

// The build functions below each read through one snapshot so that accounts, entries and
// invoices agree with each other.

func (s *reportingService) buildProfitLoss(ctx context.Context, from, to time.Time) (report domain.ProfitLossReport, err error) {
	tracker := s.metrics.TrackReport(string(domain.ReportProfitLoss))
	defer func() { err = tracker.End(err) }()

	err = s.store.WithReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		accounts, entries, err := readPeriod(ctx, snap, &from, &to)
		if err != nil {
			return err
		}
		agg := accounting.Aggregate(entries, accounts, accounting.AggregationFilter{Start: from, End: to})
		report = reports.BuildProfitLoss(agg, from, to)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss",
			slog.String("from", from.Format(dateKey)),
			slog.String("to", to.Format(dateKey)))
		return report, fmt.Errorf("failed to build profit and loss: %w", err)
	}
	s.logWarnings(ctx, "profit and loss", report.Warnings)
	return report, nil
}

func (s *reportingService) buildBalanceSheet(ctx context.Context, asOf time.Time) (report domain.BalanceSheetReport, err error) {
	tracker := s.metrics.TrackReport(string(domain.ReportBalanceSheet))
	defer func() { err = tracker.End(err) }()

	err = s.store.WithReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		accounts, entries, err := readPeriod(ctx, snap, nil, &asOf)
		if err != nil {
			return err
		}
		agg := accounting.Aggregate(entries, accounts, accounting.AggregationFilter{End: asOf})
		report = reports.BuildBalanceSheet(agg, asOf, s.policy.BalanceTolerance)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet", slog.String("as_of", asOf.Format(dateKey)))
		return report, fmt.Errorf("failed to build balance sheet: %w", err)
	}
	if !report.Summary.IsBalanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("as_of", asOf.Format(dateKey)),
			slog.String("difference", report.Summary.BalanceDifference.String()))
	}
	s.logWarnings(ctx, "balance sheet", report.Warnings)
	return report, nil
}

func (s *reportingService) buildCashFlow(ctx context.Context, from, to time.Time) (report domain.CashFlowReport, err error) {
	tracker := s.metrics.TrackReport(string(domain.ReportCashFlow))
	defer func() { err = tracker.End(err) }()

	err = s.store.WithReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		accounts, entries, err := readPeriod(ctx, snap, &from, &to)
		if err != nil {
			return err
		}
		dayBefore := accounting.DateOnly(from).AddDate(0, 0, -1)
		prior, err := snap.Entries(ctx, domain.LedgerEntryFilter{To: &dayBefore, Statuses: domain.ReportableStatuses})
		if err != nil {
			return fmt.Errorf("reading entries before %s: %w", from.Format(dateKey), err)
		}
		report = reports.BuildCashFlow(entries, prior, accounts, accounting.AggregationFilter{Start: from, End: to}, s.policy.CashFlow)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build cash flow",
			slog.String("from", from.Format(dateKey)),
			slog.String("to", to.Format(dateKey)))
		return report, fmt.Errorf("failed to build cash flow: %w", err)
	}
	s.logWarnings(ctx, "cash flow", report.Warnings)
	return report, nil
}

func (s *reportingService) buildTax(ctx context.Context, taxType domain.TaxType, from, to time.Time) (report domain.TaxReport, err error) {
	tracker := s.metrics.TrackReport(string(domain.ReportTax))
	defer func() { err = tracker.End(err) }()

	err = s.store.WithReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		accounts, entries, err := readPeriod(ctx, snap, &from, &to)
		if err != nil {
			return err
		}
		report, err = reports.BuildTax(taxType, entries, accounts, accounting.AggregationFilter{Start: from, End: to}, s.policy.IncomeTaxBrackets)
		if err != nil {
			return fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build tax report", slog.String("tax_type", string(taxType)))
		return report, fmt.Errorf("failed to build %s report: %w", taxType, err)
	}
	s.logWarnings(ctx, "tax", report.Warnings)
	return report, nil
}

func (s *reportingService) buildReceivablesAging(ctx context.Context, today time.Time) (report domain.ReceivablesAgingReport, err error) {
	tracker := s.metrics.TrackReport("RECEIVABLES_AGING")
	defer func() { err = tracker.End(err) }()

	err = s.store.WithReadSnapshot(ctx, func(ctx context.Context, snap portsrepo.LedgerSnapshot) error {
		invoices, err := snap.UnpaidInvoices(ctx)
		if err != nil {
			return fmt.Errorf("reading unpaid invoices: %w", err)
		}
		report = reports.BuildReceivablesAging(invoices, today)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build receivables aging")
		return report, fmt.Errorf("failed to build receivables aging: %w", err)
	}
	return report, nil
}

// readPeriod loads the chart of accounts and the reportable entries between from and to.
// A nil bound leaves that side open.
func readPeriod(ctx context.Context, snap portsrepo.LedgerSnapshot, from, to *time.Time) (map[string]domain.Account, []domain.LedgerEntry, error) {
	accounts, err := snap.Accounts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading accounts: %w", err)
	}
	entries, err := snap.Entries(ctx, domain.LedgerEntryFilter{From: from, To: to, Statuses: domain.ReportableStatuses})
	if err != nil {
		return nil, nil, fmt.Errorf("reading ledger entries: %w", err)
	}
	return accounts, entries, nil
}

func (s *reportingService) logWarnings(ctx context.Context, statement string, warnings []string) {
	for _, w := range warnings {
		s.GetLogger(ctx).Warn("Statement built with data quality warning",
			slog.String("statement", statement),
			slog.String("warning", w))
	}
}
