package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/core/reports"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financeHandler serves the on-demand financial statements
type financeHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func newFinanceHandler(rs portssvc.ReportingService) *financeHandler {
	return &financeHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerFinanceRoutes registers the statement routes
func registerFinanceRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newFinanceHandler(reportingService)

	finance := rg.Group("/finance")
	{
		finance.GET("/profit-loss", h.getProfitAndLoss)
		finance.GET("/balance-sheet", h.getBalanceSheet)
		finance.GET("/cash-flow", h.getCashFlow)
		finance.GET("/tax", h.getTax)
		finance.GET("/receivables-aging", h.getReceivablesAging)
	}
}

// bindPeriod reads period_start and period_end, writing a 400 on failure.
func bindPeriod(c *gin.Context, logger *slog.Logger) (from, to time.Time, ok bool) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind period parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	from, errFrom := parseDate(params.PeriodStart)
	to, errTo := parseDate(params.PeriodEnd)
	if errFrom != nil || errTo != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss statement
// @Description Aggregates approved and posted ledger entries between two dates into revenue, expenses and profit
// @Tags finance
// @Produce json
// @Param period_start query string true "Start date (YYYY-MM-DD)"
// @Param period_end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /finance/profit-loss [get]
func (h *financeHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Aggregates approved and posted ledger entries up to a date into assets, liabilities and equity
// @Tags finance
// @Produce json
// @Param as_of_date query string false "Balance sheet date (YYYY-MM-DD)" default(current date)
// @Param end query string false "Alias of as_of_date"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /finance/balance-sheet [get]
func (h *financeHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind balance sheet parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	raw := params.AsOfDate
	if raw == "" {
		raw = params.End
	}
	asOf := h.now()
	if raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getCashFlow godoc
// @Summary Generate cash flow statement
// @Description Classifies cash movements between two dates into operating, investing and financing activities
// @Tags finance
// @Produce json
// @Param period_start query string true "Start date (YYYY-MM-DD)"
// @Param period_end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /finance/cash-flow [get]
func (h *financeHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), from, to, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate cash flow statement")
		return
	}
	labels := map[domain.CashFlowActivity]string{
		domain.ActivityOperating: reports.ActivityLabel(domain.ActivityOperating),
		domain.ActivityInvesting: reports.ActivityLabel(domain.ActivityInvesting),
		domain.ActivityFinancing: reports.ActivityLabel(domain.ActivityFinancing),
	}
	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report, labels))
}

// getTax godoc
// @Summary Generate tax report
// @Description Computes GST, income tax or TDS figures between two dates
// @Tags finance
// @Produce json
// @Param tax_type query string true "Tax type" Enums(GST, INCOME_TAX, TDS)
// @Param period_start query string true "Start date (YYYY-MM-DD)"
// @Param period_end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.TaxResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /finance/tax [get]
func (h *financeHandler) getTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.TaxParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind tax parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	from, errFrom := parseDate(params.PeriodStart)
	to, errTo := parseDate(params.PeriodEnd)
	if errFrom != nil || errTo != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	report, err := h.reportingService.Tax(c.Request.Context(), domain.TaxType(params.TaxType), from, to, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate tax report")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaxResponse(report))
}

// getReceivablesAging godoc
// @Summary Generate receivables aging report
// @Description Buckets every unpaid invoice by the number of days it is overdue
// @Tags finance
// @Produce json
// @Success 200 {object} dto.ReceivablesAgingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /finance/receivables-aging [get]
func (h *financeHandler) getReceivablesAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	report, err := h.reportingService.ReceivablesAging(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate receivables aging report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivablesAgingResponse(report))
}
