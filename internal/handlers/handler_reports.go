package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
	"github.com/ganpathioverseas/erp_finance/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests for persisted reports
type reportHandler struct {
	reportService portssvc.ReportStoreSvc
	analytics     *analytics.Client
}

func newReportHandler(rs portssvc.ReportStoreSvc, client *analytics.Client) *reportHandler {
	return &reportHandler{
		reportService: rs,
		analytics:     client,
	}
}

// registerReportRoutes registers routes for persisted reports
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportStoreSvc, client *analytics.Client) {
	h := newReportHandler(reportService, client)

	reportGroup := rg.Group("/reports")
	{
		reportGroup.GET("", h.listReports)
		reportGroup.POST("", h.createReport)
		reportGroup.GET("/:reportID", h.getReport)
		reportGroup.PATCH("/:reportID/status", h.updateReportStatus)
		reportGroup.DELETE("/:reportID", h.deleteReport)
		reportGroup.GET("/:reportID/export", h.exportReport)
	}
}

// listReports godoc
// @Summary List reports
// @Description Lists persisted reports newest first, with a summary of every matching report
// @Tags reports
// @Produce json
// @Param report_type query string false "Report type" Enums(PROFIT_LOSS, BALANCE_SHEET, CASH_FLOW, TAX, CUSTOM)
// @Param status query string false "Report status" Enums(DRAFT, FINALIZED, ARCHIVED)
// @Param period_type query string false "Period type" Enums(MONTHLY, QUARTERLY, YEARLY, CUSTOM)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListReportsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list reports"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.ListReportsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind list reports parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	filter := domain.ReportFilter{Page: params.Page, Limit: params.Limit}
	if params.ReportType != "" {
		rt := domain.ReportType(params.ReportType)
		filter.ReportType = &rt
	}
	if params.Status != "" {
		status, _ := domain.ParseReportStatus(params.Status)
		filter.Status = &status
	}
	if params.PeriodType != "" {
		pt := domain.PeriodType(params.PeriodType)
		filter.PeriodType = &pt
	}

	reports, summary, err := h.reportService.ListReports(c.Request.Context(), filter, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to list reports")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReportsResponse(reports, summary, params.Page, params.Limit))
}

// createReport godoc
// @Summary Generate a report
// @Description Creates a DRAFT report. Figures are computed from the ledger when generate_from_transactions is set, otherwise taken from the request.
// @Description When the header is stored but its line items are not, the response is still 201 with lineItemsError set.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.CreateReportRequest true "Report details"
// @Success 201 {object} dto.CreateReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports [post]
func (h *reportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.reportService.GenerateReport(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}
	if !result.LineItemsPersisted {
		logger.Warn("Report stored without line items",
			slog.String("report_id", result.Report.ReportID),
			slog.String("error", result.LineItemsError))
	}

	middleware.PosthogEvent(c, h.analytics, "finance_report_generated", map[string]any{
		"report_type":                string(result.Report.ReportType),
		"generate_from_transactions": req.GenerateFromTransactions,
		"line_items_saved":           result.LineItemsPersisted,
	})
	c.JSON(http.StatusCreated, dto.ToCreateReportResponse(result))
}

// getReport godoc
// @Summary Get a report
// @Description Retrieves a persisted report with its line items
// @Tags reports
// @Produce json
// @Param reportID path string true "Report ID"
// @Success 200 {object} dto.ReportResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to get report"
// @Security BearerAuth
// @Router /reports/{reportID} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	reportID := c.Param("reportID")

	report, err := h.reportService.GetReport(c.Request.Context(), reportID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to get report")
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// updateReportStatus godoc
// @Summary Change report status
// @Description Moves a report from DRAFT to FINALIZED or ARCHIVED, or from FINALIZED to ARCHIVED
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path string true "Report ID"
// @Param status body dto.UpdateReportStatusRequest true "New status"
// @Success 200 {object} dto.ReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 409 {object} map[string]string "Illegal status transition"
// @Failure 500 {object} map[string]string "Failed to update report"
// @Security BearerAuth
// @Router /reports/{reportID}/status [patch]
func (h *reportHandler) updateReportStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	reportID := c.Param("reportID")

	var req dto.UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateReportStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	status, _ := domain.ParseReportStatus(req.Status)

	report, err := h.reportService.UpdateReportStatus(c.Request.Context(), reportID, status, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update report status")
		return
	}
	logger.Info("Report status updated", slog.String("report_id", reportID), slog.String("status", string(status)))
	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}

// deleteReport godoc
// @Summary Delete a report
// @Description Deletes a report and its line items
// @Tags reports
// @Param reportID path string true "Report ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to delete report"
// @Security BearerAuth
// @Router /reports/{reportID} [delete]
func (h *reportHandler) deleteReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	reportID := c.Param("reportID")

	if err := h.reportService.DeleteReport(c.Request.Context(), reportID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete report")
		return
	}
	logger.Info("Report deleted", slog.String("report_id", reportID))
	c.Status(http.StatusNoContent)
}

// exportReport godoc
// @Summary Export a report as CSV
// @Description Writes the report header, its figures and its line items as CSV
// @Tags reports
// @Produce text/csv
// @Param reportID path string true "Report ID"
// @Success 200 {string} string "CSV document"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /reports/{reportID}/export [get]
func (h *reportHandler) exportReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	reportID := c.Param("reportID")

	// Buffered so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := h.reportService.ExportReportCSV(c.Request.Context(), reportID, userID, &buf); err != nil {
		respondError(c, logger, err, "Failed to export report")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+reportID+".csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
