package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/core/services"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportStoreTestSuite struct {
	suite.Suite
	store      *fakeLedgerStore
	reportRepo *MockReportRepository
	authorizer *MockRoleAuthorizer
	cache      *MockReportCache
	service    portssvc.ReportingSvcFacade
	ctx        context.Context
	userID     string
}

func (suite *ReportStoreTestSuite) SetupTest() {
	suite.store = testLedger()
	suite.reportRepo = new(MockReportRepository)
	suite.authorizer = new(MockRoleAuthorizer)
	suite.cache = new(MockReportCache)
	suite.ctx = context.Background()
	suite.userID = "user-accountant"
	suite.authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, mock.Anything).Return(nil).Maybe()
	suite.cache.On("Bump", mock.Anything).Return(nil).Maybe()
	suite.service = services.NewReportingService(suite.store, suite.reportRepo,
		services.WithReportingAuthorizer(suite.authorizer),
		services.WithReportingClock(clock),
	)
}

func aprilPL() dto.CreateReportRequest {
	return dto.CreateReportRequest{
		ReportType:               string(domain.ReportProfitLoss),
		Name:                     "April P&L",
		PeriodType:               string(domain.PeriodMonthly),
		PeriodStart:              "2025-04-01",
		PeriodEnd:                "2025-04-30",
		GenerateFromTransactions: true,
	}
}

func (suite *ReportStoreTestSuite) TestGenerateReport_RepeatableOverUnchangedLedger() {
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.Anything).Return(nil)
	suite.reportRepo.On("SaveLineItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	cashFlow := aprilPL()
	cashFlow.ReportType = string(domain.ReportCashFlow)
	cashFlow.Name = "April cash flow"
	balanceSheet := dto.CreateReportRequest{
		ReportType:               string(domain.ReportBalanceSheet),
		Name:                     "April close",
		AsOfDate:                 "2025-04-30",
		GenerateFromTransactions: true,
	}

	for _, req := range []dto.CreateReportRequest{aprilPL(), cashFlow, balanceSheet} {
		suite.Run(req.ReportType, func() {
			first, err := suite.service.GenerateReport(suite.ctx, req, suite.userID)
			suite.Require().NoError(err)
			second, err := suite.service.GenerateReport(suite.ctx, req, suite.userID)
			suite.Require().NoError(err)

			suite.NotEqual(first.Report.ReportID, second.Report.ReportID)
			suite.Require().Len(second.Report.Figures, len(first.Report.Figures))
			for key, value := range first.Report.Figures {
				other, ok := second.Report.Figures[key]
				suite.Require().True(ok, "figure %s missing on second run", key)
				suite.True(value.Equal(other), "figure %s: %s then %s", key, value, other)
			}
			suite.Equal(first.Report.Flags, second.Report.Flags)
		})
	}
}

func (suite *ReportStoreTestSuite) TestGenerateReport_FromTransactions() {
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.MatchedBy(func(r domain.Report) bool {
		return r.Status == domain.ReportDraft && r.GeneratedFromTransactions && r.GeneratedBy == suite.userID
	})).Return(nil).Once()
	suite.reportRepo.On("SaveLineItems", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(items []domain.LineItem) bool {
		if len(items) != 3 {
			return false
		}
		for _, it := range items {
			if it.ReportID == "" || it.LineItemID == "" {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	result, err := suite.service.GenerateReport(suite.ctx, aprilPL(), suite.userID)

	suite.Require().NoError(err)
	suite.True(result.LineItemsPersisted)
	suite.Empty(result.LineItemsError)
	suite.Len(result.Report.LineItems, 3)
	suite.True(result.Report.Figures["net_income"].Equal(decimal.NewFromInt(5000)))
	suite.Equal(fixedNow, result.Report.CreatedAt)
	suite.authorizer.AssertCalled(suite.T(), "AuthorizeUserAction", mock.Anything, suite.userID, domain.RoleAccountant)
	suite.reportRepo.AssertExpectations(suite.T())
}

func (suite *ReportStoreTestSuite) TestGenerateReport_LineItemFailureKeepsHeader() {
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.Anything).Return(nil).Once()
	suite.reportRepo.On("SaveLineItems", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("deadlock detected")).Once()
	suite.reportRepo.On("UpdateReportNotes", mock.Anything, mock.Anything, mock.MatchedBy(func(notes string) bool {
		return strings.Contains(notes, services.LineItemsNotSavedNote)
	}), suite.userID, fixedNow).Return(nil).Once()

	result, err := suite.service.GenerateReport(suite.ctx, aprilPL(), suite.userID)

	suite.Require().NoError(err)
	suite.False(result.LineItemsPersisted)
	suite.Contains(result.LineItemsError, "deadlock detected")
	suite.Contains(result.Report.Notes, services.LineItemsNotSavedNote)
	suite.Empty(result.Report.LineItems)
	suite.reportRepo.AssertExpectations(suite.T())
}

func (suite *ReportStoreTestSuite) TestGenerateReport_HeaderFailureFails() {
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.Anything).Return(errors.New("unique violation")).Once()

	result, err := suite.service.GenerateReport(suite.ctx, aprilPL(), suite.userID)

	suite.Error(err)
	suite.Nil(result)
	suite.reportRepo.AssertNotCalled(suite.T(), "SaveLineItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportStoreTestSuite) TestGenerateReport_SuppliedCustomFigures() {
	req := dto.CreateReportRequest{
		ReportType:  string(domain.ReportCustom),
		Name:        "Board pack",
		PeriodStart: "2025-04-01",
		PeriodEnd:   "2025-06-30",
		Figures:     map[string]decimal.Decimal{"machine_hours": decimal.NewFromInt(412)},
	}
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.MatchedBy(func(r domain.Report) bool {
		return r.PeriodType == domain.PeriodCustom && !r.GeneratedFromTransactions
	})).Return(nil).Once()

	result, err := suite.service.GenerateReport(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.LineItemsPersisted)
	suite.True(result.Report.Figures["machine_hours"].Equal(decimal.NewFromInt(412)))
	suite.Zero(suite.store.snapshots)
	suite.reportRepo.AssertNotCalled(suite.T(), "SaveLineItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportStoreTestSuite) TestGenerateReport_ValidationErrors() {
	tests := []struct {
		name   string
		mutate func(r *dto.CreateReportRequest)
	}{
		{"missing name", func(r *dto.CreateReportRequest) { r.Name = "  " }},
		{"missing period", func(r *dto.CreateReportRequest) { r.PeriodEnd = "" }},
		{"inverted period", func(r *dto.CreateReportRequest) { r.PeriodStart, r.PeriodEnd = "2025-04-30", "2025-04-01" }},
		{"bad date", func(r *dto.CreateReportRequest) { r.PeriodStart = "01/04/2025" }},
		{"balance sheet without as-of", func(r *dto.CreateReportRequest) { r.ReportType = string(domain.ReportBalanceSheet) }},
		{"tax without type", func(r *dto.CreateReportRequest) { r.ReportType = string(domain.ReportTax) }},
		{"custom from transactions", func(r *dto.CreateReportRequest) { r.ReportType = string(domain.ReportCustom) }},
		{"no figures", func(r *dto.CreateReportRequest) { r.GenerateFromTransactions = false }},
		{"unknown report type", func(r *dto.CreateReportRequest) { r.ReportType = "FORECAST" }},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := aprilPL()
			tt.mutate(&req)

			_, err := suite.service.GenerateReport(suite.ctx, req, suite.userID)

			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.reportRepo.AssertNotCalled(suite.T(), "SaveReportHeader", mock.Anything, mock.Anything)
}

func (suite *ReportStoreTestSuite) TestGenerateReport_BumpsCache() {
	svc := services.NewReportingService(suite.store, suite.reportRepo,
		services.WithReportingAuthorizer(suite.authorizer),
		services.WithReportCache(suite.cache),
		services.WithReportingClock(clock),
	)
	suite.cache.On("Key", mock.Anything, mock.Anything).Return("", errors.New("unused")).Maybe()
	suite.reportRepo.On("SaveReportHeader", mock.Anything, mock.Anything).Return(nil).Once()
	suite.reportRepo.On("SaveLineItems", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.GenerateReport(suite.ctx, aprilPL(), suite.userID)

	suite.Require().NoError(err)
	suite.cache.AssertCalled(suite.T(), "Bump", mock.Anything)
}

func draftReport() *domain.Report {
	start, end := day(2025, time.April, 1), day(2025, time.April, 30)
	return &domain.Report{
		ReportID:    "rep-1",
		ReportType:  domain.ReportProfitLoss,
		Name:        "April P&L",
		PeriodType:  domain.PeriodMonthly,
		PeriodStart: &start,
		PeriodEnd:   &end,
		Status:      domain.ReportDraft,
		Figures: map[string]decimal.Decimal{
			"total_revenue": decimal.NewFromInt(10000),
			"net_income":    decimal.NewFromInt(5000),
		},
		GeneratedBy: "user-accountant",
		LineItems: []domain.LineItem{
			{LineItemID: "li-2", Category: "Expenses", Description: "6000 Shop Rent", AccountID: strPtr("rent"), Amount: decimal.NewFromInt(1000), SortOrder: 2},
			{LineItemID: "li-1", Category: "Revenue", Description: "4000 Printing Sales", AccountID: strPtr("sales"), Amount: decimal.NewFromInt(10000), SortOrder: 1},
		},
	}
}

func (suite *ReportStoreTestSuite) TestUpdateReportStatus_Transitions() {
	tests := []struct {
		name    string
		from    domain.ReportStatus
		to      domain.ReportStatus
		wantErr error
		want    domain.ReportStatus
	}{
		{"draft to finalized", domain.ReportDraft, domain.ReportFinalized, nil, domain.ReportFinalized},
		{"legacy final spelling", domain.ReportDraft, domain.ReportStatus("FINAL"), nil, domain.ReportFinalized},
		{"draft to archived", domain.ReportDraft, domain.ReportArchived, nil, domain.ReportArchived},
		{"finalized to archived", domain.ReportFinalized, domain.ReportArchived, nil, domain.ReportArchived},
		{"finalized back to draft", domain.ReportFinalized, domain.ReportDraft, apperrors.ErrConflict, ""},
		{"archived is terminal", domain.ReportArchived, domain.ReportFinalized, apperrors.ErrConflict, ""},
		{"unknown status", domain.ReportDraft, domain.ReportStatus("PUBLISHED"), apperrors.ErrValidation, ""},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			repo := new(MockReportRepository)
			report := draftReport()
			report.Status = tt.from
			repo.On("FindReportByID", mock.Anything, "rep-1").Return(report, nil).Maybe()
			repo.On("UpdateReportStatus", mock.Anything, "rep-1", tt.want, suite.userID, fixedNow).Return(nil).Maybe()
			svc := services.NewReportingService(suite.store, repo,
				services.WithReportingAuthorizer(suite.authorizer),
				services.WithReportingClock(clock),
			)

			updated, err := svc.UpdateReportStatus(suite.ctx, "rep-1", tt.to, suite.userID)

			if tt.wantErr != nil {
				suite.ErrorIs(err, tt.wantErr)
				repo.AssertNotCalled(suite.T(), "UpdateReportStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			suite.Require().NoError(err)
			suite.Equal(tt.want, updated.Status)
			suite.Equal(suite.userID, updated.LastUpdatedBy)
		})
	}
}

func (suite *ReportStoreTestSuite) TestUpdateReportStatus_NotFound() {
	suite.reportRepo.On("FindReportByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateReportStatus(suite.ctx, "missing", domain.ReportFinalized, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportStoreTestSuite) TestListReports_ClampsPaging() {
	want := domain.ReportFilter{Page: 1, Limit: 100}
	summary := &domain.ReportListSummary{Total: 3, Draft: 2, Finalized: 1}
	suite.reportRepo.On("ListReports", mock.Anything, want).Return([]domain.Report{*draftReport()}, nil).Once()
	suite.reportRepo.On("SummarizeReports", mock.Anything, want).Return(summary, nil).Once()

	list, got, err := suite.service.ListReports(suite.ctx, domain.ReportFilter{Page: 0, Limit: 500}, suite.userID)

	suite.Require().NoError(err)
	suite.Len(list, 1)
	suite.Equal(summary, got)
}

func (suite *ReportStoreTestSuite) TestDeleteReport_RequiresAdmin() {
	authorizer := new(MockRoleAuthorizer)
	authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, domain.RoleAdmin).Return(apperrors.ErrForbidden).Once()
	svc := services.NewReportingService(suite.store, suite.reportRepo, services.WithReportingAuthorizer(authorizer))

	err := svc.DeleteReport(suite.ctx, "rep-1", suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.reportRepo.AssertNotCalled(suite.T(), "DeleteReport", mock.Anything, mock.Anything)
}

func (suite *ReportStoreTestSuite) TestDeleteReport_Success() {
	suite.reportRepo.On("DeleteReport", mock.Anything, "rep-1").Return(nil).Once()

	err := suite.service.DeleteReport(suite.ctx, "rep-1", suite.userID)

	suite.NoError(err)
	suite.reportRepo.AssertExpectations(suite.T())
}

func (suite *ReportStoreTestSuite) TestExportReportCSV() {
	suite.reportRepo.On("FindReportByID", mock.Anything, "rep-1").Return(draftReport(), nil).Once()
	var buf bytes.Buffer

	err := suite.service.ExportReportCSV(suite.ctx, "rep-1", suite.userID, &buf)

	suite.Require().NoError(err)
	out := buf.String()
	suite.Contains(out, "Report,April P&L\n")
	suite.Contains(out, "Period,2025-04-01 to 2025-04-30\n")
	suite.Contains(out, "Net Income,5000.00\n")
	suite.Contains(out, "Total Revenue,10000.00\n")
	revenue := strings.Index(out, "Revenue,4000 Printing Sales,sales,10000.00")
	rent := strings.Index(out, "Expenses,6000 Shop Rent,rent,1000.00")
	suite.True(revenue > 0 && rent > revenue, "line items should follow sort order")
}

func TestReportStoreTestSuite(t *testing.T) {
	suite.Run(t, new(ReportStoreTestSuite))
}
