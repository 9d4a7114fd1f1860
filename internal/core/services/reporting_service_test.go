package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/core/services"
	"github.com/ganpathioverseas/erp_finance/internal/observability"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store      *fakeLedgerStore
	reportRepo *MockReportRepository
	authorizer *MockRoleAuthorizer
	service    portssvc.ReportingSvcFacade
	ctx        context.Context
	userID     string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.store = testLedger()
	suite.reportRepo = new(MockReportRepository)
	suite.authorizer = new(MockRoleAuthorizer)
	suite.ctx = context.Background()
	suite.userID = "user-accountant"
	suite.service = services.NewReportingService(suite.store, suite.reportRepo,
		services.WithReportingAuthorizer(suite.authorizer),
		services.WithReportMetrics(observability.NewMetrics()),
		services.WithReportingClock(clock),
	)
}

func (suite *ReportingServiceTestSuite) allow() {
	suite.authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, mock.Anything).Return(nil)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ComputesFromOneSnapshot() {
	suite.allow()

	report, err := suite.service.ProfitAndLoss(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, suite.store.snapshots)
	suite.True(report.Summary.TotalRevenue.Equal(decimal.NewFromInt(10000)))
	suite.True(report.Summary.CostOfGoodsSold.Equal(decimal.NewFromInt(4000)))
	suite.True(report.Summary.GrossProfit.Equal(decimal.NewFromInt(6000)))
	suite.True(report.Summary.TotalExpenses.Equal(decimal.NewFromInt(1000)))
	suite.True(report.Summary.NetIncome.Equal(decimal.NewFromInt(5000)))
	suite.True(report.Summary.NetProfitMargin.Equal(decimal.NewFromInt(50)))
	suite.authorizer.AssertCalled(suite.T(), "AuthorizeUserAction", mock.Anything, suite.userID, domain.RoleViewer)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvertedPeriod() {
	suite.allow()

	_, err := suite.service.ProfitAndLoss(suite.ctx, day(2025, time.April, 30), day(2025, time.April, 1), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.store.snapshots)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_Forbidden() {
	suite.authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, domain.RoleViewer).Return(apperrors.ErrForbidden)

	_, err := suite.service.ProfitAndLoss(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Zero(suite.store.snapshots)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_StoreError() {
	suite.allow()
	boom := errors.New("connection reset")
	suite.store.err = boom

	_, err := suite.service.ProfitAndLoss(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.ErrorIs(err, boom)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ReadsEverythingUpToAsOf() {
	suite.allow()

	report, err := suite.service.BalanceSheet(suite.ctx, day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.True(report.Summary.TotalAssets.Equal(decimal.NewFromInt(2000)))
	suite.True(report.Summary.OwnersEquity.Equal(decimal.NewFromInt(50000)))
	suite.True(report.Summary.RetainedEarnings.Equal(decimal.NewFromInt(5000)))
	suite.False(report.Summary.IsBalanced)
	suite.Require().Len(suite.store.filters, 1)
	suite.Nil(suite.store.filters[0].From)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RequiresAsOf() {
	suite.allow()

	_, err := suite.service.BalanceSheet(suite.ctx, time.Time{}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_UsesPriorEntriesForOpeningCash() {
	suite.allow()

	report, err := suite.service.CashFlow(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, suite.store.snapshots)
	suite.True(report.Summary.BeginningCash.Equal(decimal.NewFromInt(2000)))
	suite.True(report.Summary.EndingCash.Equal(report.Summary.BeginningCash.Add(report.Summary.NetChange)))
	suite.Require().Len(suite.store.filters, 2)
	suite.Equal(day(2025, time.March, 31), *suite.store.filters[1].To)
}

func (suite *ReportingServiceTestSuite) TestTax_GST() {
	suite.allow()

	report, err := suite.service.Tax(suite.ctx, domain.TaxGST, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.True(report.Summary.OutputTax.Equal(decimal.NewFromInt(1800)))
	suite.True(report.Summary.InputTax.Equal(decimal.NewFromInt(720)))
	suite.True(report.Summary.NetPayable.Equal(decimal.NewFromInt(1080)))
}

func (suite *ReportingServiceTestSuite) TestTax_UnknownType() {
	suite.allow()

	_, err := suite.service.Tax(suite.ctx, domain.TaxType("VAT"), day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.store.snapshots)
}

func (suite *ReportingServiceTestSuite) TestReceivablesAging_UsesClock() {
	suite.allow()

	report, err := suite.service.ReceivablesAging(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(day(2025, time.May, 31), report.AsOf)
	suite.True(report.GrandTotal.Equal(decimal.NewFromInt(300)))
	suite.Require().Len(report.Rows, 2)
	suite.Equal("INV-002", report.Rows[0].InvoiceNumber)
	suite.Equal(91, report.Rows[0].DaysOverdue)
	suite.Equal(domain.BucketOver90, report.Rows[0].Bucket)
	suite.Equal(domain.BucketCurrent, report.Rows[1].Bucket)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ServedFromCache() {
	suite.allow()
	cache := new(MockReportCache)
	cache.On("Key", mock.Anything, []string{"pl", "2025-04-01", "2025-04-30"}).Return("finance:reports:pl:2025-04-01:2025-04-30:v3", nil)
	cache.On("FetchJSON", mock.Anything, "finance:reports:pl:2025-04-01:2025-04-30:v3", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*domain.ProfitLossReport)
			dest.Summary.NetIncome = decimal.NewFromInt(42)
		}).
		Return(true, nil)
	svc := services.NewReportingService(suite.store, suite.reportRepo,
		services.WithReportingAuthorizer(suite.authorizer),
		services.WithReportCache(cache),
	)

	report, err := svc.ProfitAndLoss(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.True(report.Summary.NetIncome.Equal(decimal.NewFromInt(42)))
	suite.Zero(suite.store.snapshots)
	cache.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_CacheDownFallsBackToLedger() {
	suite.allow()
	cache := new(MockReportCache)
	cache.On("Key", mock.Anything, mock.Anything).Return("", errors.New("redis: connection refused"))
	svc := services.NewReportingService(suite.store, suite.reportRepo,
		services.WithReportingAuthorizer(suite.authorizer),
		services.WithReportCache(cache),
	)

	report, err := svc.ProfitAndLoss(suite.ctx, day(2025, time.April, 1), day(2025, time.April, 30), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, suite.store.snapshots)
	suite.True(report.Summary.NetIncome.Equal(decimal.NewFromInt(5000)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
