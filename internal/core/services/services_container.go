package services

import (
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/observability"
	"github.com/ganpathioverseas/erp_finance/internal/platform/policy"
)

// Dependencies are the optional infrastructure pieces shared by the services.
// Any of them may be nil.
type Dependencies struct {
	Cache   portsrepo.ReportCache
	Metrics *observability.Metrics
	Policy  *policy.Policy
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Roles first since every other service authorizes through them
	roles := NewRoleService(repos.UserRoleRepo)
	container.Roles = roles

	accountOpts := []AccountServiceOption{WithAccountAuthorizer(roles)}
	ledgerOpts := []LedgerServiceOption{WithLedgerAuthorizer(roles)}
	reportingOpts := []ReportingServiceOption{
		WithReportingAuthorizer(roles),
		WithReportMetrics(deps.Metrics),
		WithFinancePolicy(deps.Policy),
	}
	if deps.Cache != nil {
		accountOpts = append(accountOpts, WithAccountCache(deps.Cache))
		ledgerOpts = append(ledgerOpts, WithLedgerCache(deps.Cache))
		reportingOpts = append(reportingOpts, WithReportCache(deps.Cache))
	}

	container.Account = NewAccountService(repos.AccountRepo, accountOpts...)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo, ledgerOpts...)
	container.Reporting = NewReportingService(repos.LedgerStore, repos.ReportRepo, reportingOpts...)

	return container
}
