package services_test

import (
	"context"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountEntriesForAccount(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerEntryFilter, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, approvedBy *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, status, approvedBy, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ReportRepository ---
type MockReportRepository struct {
	mock.Mock
}

var _ portsrepo.ReportRepositoryFacade = (*MockReportRepository)(nil)

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) SummarizeReports(ctx context.Context, filter domain.ReportFilter) (*domain.ReportListSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportListSummary), args.Error(1)
}

func (m *MockReportRepository) SaveReportHeader(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) SaveLineItems(ctx context.Context, reportID string, items []domain.LineItem) error {
	args := m.Called(ctx, reportID, items)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reportID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReportNotes(ctx context.Context, reportID string, notes string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, reportID, notes, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockReportRepository) DeleteReport(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// --- Mock UserRoleRepository ---
type MockUserRoleRepository struct {
	mock.Mock
}

var _ portsrepo.UserRoleRepositoryFacade = (*MockUserRoleRepository)(nil)

func (m *MockUserRoleRepository) FindUserRole(ctx context.Context, userID string) (*domain.UserRoleAssignment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRoleAssignment), args.Error(1)
}

func (m *MockUserRoleRepository) SaveUserRole(ctx context.Context, assignment domain.UserRoleAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

// --- Mock RoleAuthorizer ---
type MockRoleAuthorizer struct {
	mock.Mock
}

var _ portssvc.RoleAuthorizerSvc = (*MockRoleAuthorizer)(nil)

func (m *MockRoleAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.UserRole) error {
	args := m.Called(ctx, userID, requiredRole)
	return args.Error(0)
}

// --- Mock ReportCache ---
type MockReportCache struct {
	mock.Mock
}

var _ portsrepo.ReportCache = (*MockReportCache)(nil)

func (m *MockReportCache) Key(ctx context.Context, parts ...string) (string, error) {
	args := m.Called(ctx, parts)
	return args.String(0), args.Error(1)
}

func (m *MockReportCache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) (bool, error) {
	args := m.Called(ctx, key, dest, loader)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportCache) Bump(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fakeLedgerStore serves a fixed ledger through WithReadSnapshot and counts snapshots.
type fakeLedgerStore struct {
	accounts  map[string]domain.Account
	entries   []domain.LedgerEntry
	invoices  []domain.Invoice
	err       error
	snapshots int
	filters   []domain.LedgerEntryFilter
}

var _ portsrepo.LedgerStore = (*fakeLedgerStore)(nil)

func (f *fakeLedgerStore) WithReadSnapshot(ctx context.Context, fn func(ctx context.Context, snap portsrepo.LedgerSnapshot) error) error {
	f.snapshots++
	if f.err != nil {
		return f.err
	}
	return fn(ctx, f)
}

func (f *fakeLedgerStore) Accounts(ctx context.Context) (map[string]domain.Account, error) {
	return f.accounts, nil
}

func (f *fakeLedgerStore) Entries(ctx context.Context, filter domain.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	f.filters = append(f.filters, filter)
	out := make([]domain.LedgerEntry, 0, len(f.entries))
	for _, e := range f.entries {
		if filter.From != nil && e.EntryDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.EntryDate.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLedgerStore) UnpaidInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return f.invoices, nil
}
