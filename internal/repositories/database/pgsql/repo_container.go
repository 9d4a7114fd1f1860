package pgsql

import (
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		LedgerStore:  newPgxLedgerStore(dbPool),
		ReportRepo:   newReportRepository(dbPool),
		UserRoleRepo: newPgxUserRoleRepository(dbPool),
	}
}
