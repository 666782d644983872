package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/middleware"
)

// reportingHandler handles HTTP requests for the billing reports. All report
// endpoints are administrator-only; the service enforces the role.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/fee-collection", h.feeCollection)
		reports.GET("/outstanding-dues", h.outstandingDues)
		reports.GET("/payment-history", h.paymentHistory)
		reports.GET("/class-wise-summary", h.classWiseSummary)
	}
}

// feeCollection godoc
// @Summary Fee collection report
// @Description Groups completed payments by month and by (month, class) (admin only)
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Window start (YYYY-MM-DD), requires endDate"
// @Param   endDate query string false "Window end (YYYY-MM-DD), requires startDate"
// @Param   classFilter query string false "Restrict to one class"
// @Success 200 {object} dto.FeeCollectionReportResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/fee-collection [get]
func (h *reportingHandler) feeCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.FeeCollectionReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for FeeCollection", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.FeeCollection(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build fee collection report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// outstandingDues godoc
// @Summary Outstanding dues report
// @Description Lists pending and partially paid invoices by due date; the summary covers the whole filtered set (admin only)
// @Tags reports
// @Produce  json
// @Param   classFilter query string false "Restrict to one class"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} dto.OutstandingDuesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/outstanding-dues [get]
func (h *reportingHandler) outstandingDues(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.OutstandingDuesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for OutstandingDues", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.OutstandingDues(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build outstanding dues report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// paymentHistory godoc
// @Summary Payment history report
// @Description Lists completed payments newest-first with a method-wise summary over the whole filtered set (admin only)
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Window start (YYYY-MM-DD), requires endDate"
// @Param   endDate query string false "Window end (YYYY-MM-DD), requires startDate"
// @Param   classFilter query string false "Restrict to one class"
// @Param   paymentMethod query string false "Restrict to one payment method"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} dto.PaymentHistoryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/payment-history [get]
func (h *reportingHandler) paymentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PaymentHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for PaymentHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.PaymentHistory(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build payment history report")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// classWiseSummary godoc
// @Summary Class-wise fee summary
// @Description Aggregates billing vs. collection per student class with collection rates (admin only)
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Invoice date window start (YYYY-MM-DD), requires endDate"
// @Param   endDate query string false "Invoice date window end (YYYY-MM-DD), requires startDate"
// @Param   academicYear query string false "Restrict to one academic year"
// @Success 200 {object} dto.ClassWiseSummaryResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/class-wise-summary [get]
func (h *reportingHandler) classWiseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ClassWiseSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ClassWiseSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.ClassWiseSummary(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to build class-wise summary")
		return
	}

	c.JSON(http.StatusOK, resp)
}
