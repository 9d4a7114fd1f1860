package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter domain.AccountFilter, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, filter, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByID(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, userID string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, params, userID)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockLedgerService) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ProfitAndLoss(ctx context.Context, from, to time.Time, userID string) (*domain.ProfitLossReport, error) {
	args := m.Called(ctx, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossReport), args.Error(1)
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) CashFlow(ctx context.Context, from, to time.Time, userID string) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}

func (m *MockReportingService) Tax(ctx context.Context, taxType domain.TaxType, from, to time.Time, userID string) (*domain.TaxReport, error) {
	args := m.Called(ctx, taxType, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxReport), args.Error(1)
}

func (m *MockReportingService) ReceivablesAging(ctx context.Context, userID string) (*domain.ReceivablesAgingReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReceivablesAgingReport), args.Error(1)
}

func (m *MockReportingService) GenerateReport(ctx context.Context, req dto.CreateReportRequest, userID string) (*domain.PersistResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersistResult), args.Error(1)
}

func (m *MockReportingService) GetReport(ctx context.Context, reportID string, userID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportingService) ListReports(ctx context.Context, filter domain.ReportFilter, userID string) ([]domain.Report, *domain.ReportListSummary, error) {
	args := m.Called(ctx, filter, userID)
	var reports []domain.Report
	if args.Get(0) != nil {
		reports = args.Get(0).([]domain.Report)
	}
	var summary *domain.ReportListSummary
	if args.Get(1) != nil {
		summary = args.Get(1).(*domain.ReportListSummary)
	}
	return reports, summary, args.Error(2)
}

func (m *MockReportingService) UpdateReportStatus(ctx context.Context, reportID string, status domain.ReportStatus, userID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportingService) DeleteReport(ctx context.Context, reportID string, userID string) error {
	args := m.Called(ctx, reportID, userID)
	return args.Error(0)
}

func (m *MockReportingService) ExportReportCSV(ctx context.Context, reportID string, userID string, w io.Writer) error {
	args := m.Called(ctx, reportID, userID, w)
	if body, ok := args.Get(0).(string); ok && body != "" {
		if _, err := io.WriteString(w, body); err != nil {
			return err
		}
	}
	return args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock RoleService ---
type MockRoleService struct {
	mock.Mock
}

func (m *MockRoleService) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.UserRole) error {
	args := m.Called(ctx, userID, requiredRole)
	return args.Error(0)
}

func (m *MockRoleService) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserRole), args.Error(1)
}

func (m *MockRoleService) AssignRole(ctx context.Context, actingUserID, targetUserID string, role domain.UserRole) (*domain.UserRoleAssignment, error) {
	args := m.Called(ctx, actingUserID, targetUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRoleAssignment), args.Error(1)
}

var _ portssvc.RoleSvcFacade = (*MockRoleService)(nil)
