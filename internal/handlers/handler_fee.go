package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/middleware"
)

// feeHandler handles HTTP requests related to fee structures.
type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

// newFeeHandler creates a new feeHandler.
func newFeeHandler(fs portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{
		feeService: fs,
	}
}

// registerFeeRoutes registers routes related to fee structures.
func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)

	fees := rg.Group("/fees")
	{
		fees.POST("", h.createFee)
		fees.GET("", h.listFees)
		fees.GET("/:feeID", h.getFeeByID)
		fees.PUT("/:feeID", h.updateFee)
		fees.DELETE("/:feeID", h.deactivateFee)
	}
}

// createFee godoc
// @Summary Create a fee structure entry
// @Description Adds a fee used to pre-fill invoice line items (admin only)
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   fee body dto.CreateFeeRequest true "Fee details"
// @Success 201 {object} dto.FeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create fee"
// @Security BearerAuth
// @Router /fees [post]
func (h *feeHandler) createFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fee, err := h.feeService.CreateFee(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create fee")
		return
	}

	logger.Info("Fee created successfully", slog.String("fee_id", fee.FeeID))
	c.JSON(http.StatusCreated, dto.ToFeeResponse(fee))
}

// getFeeByID godoc
// @Summary Get a fee by ID
// @Description Retrieves a fee structure entry
// @Tags fees
// @Produce  json
// @Param   feeID path string true "Fee ID"
// @Success 200 {object} dto.FeeResponse
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fee"
// @Security BearerAuth
// @Router /fees/{feeID} [get]
func (h *feeHandler) getFeeByID(c *gin.Context) {
	feeID := c.Param("feeID")

	fee, err := h.feeService.GetFeeByID(c.Request.Context(), feeID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve fee")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeResponse(fee))
}

// listFees godoc
// @Summary List fee structure entries
// @Description Retrieves fees, optionally restricted to active ones and to a class they apply to
// @Tags fees
// @Produce  json
// @Param   activeOnly query bool false "Only active fees"
// @Param   class query string false "Class the fee must apply to"
// @Success 200 {object} dto.ListFeesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list fees"
// @Security BearerAuth
// @Router /fees [get]
func (h *feeHandler) listFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListFeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListFees", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	fees, err := h.feeService.ListFees(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list fees")
		return
	}

	c.JSON(http.StatusOK, dto.ListFeesResponse{Fees: dto.ToFeeResponses(fees)})
}

// updateFee godoc
// @Summary Update a fee structure entry
// @Description Applies a partial edit to a fee (admin only)
// @Tags fees
// @Accept  json
// @Produce  json
// @Param   feeID path string true "Fee ID"
// @Param   fee body dto.UpdateFeeRequest true "Fields to update"
// @Success 200 {object} dto.FeeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 500 {object} map[string]string "Failed to update fee"
// @Security BearerAuth
// @Router /fees/{feeID} [put]
func (h *feeHandler) updateFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	var req dto.UpdateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	fee, err := h.feeService.UpdateFee(c.Request.Context(), feeID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update fee")
		return
	}

	logger.Info("Fee updated successfully", slog.String("fee_id", feeID))
	c.JSON(http.StatusOK, dto.ToFeeResponse(fee))
}

// deactivateFee godoc
// @Summary Deactivate a fee structure entry
// @Description Soft-disables a fee so it stops prefilling new invoices; existing invoice items keep their reference (admin only)
// @Tags fees
// @Produce  json
// @Param   feeID path string true "Fee ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Fee not found"
// @Failure 500 {object} map[string]string "Failed to deactivate fee"
// @Security BearerAuth
// @Router /fees/{feeID} [delete]
func (h *feeHandler) deactivateFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.feeService.DeactivateFee(c.Request.Context(), feeID, actor); err != nil {
		respondServiceError(c, err, "Failed to deactivate fee")
		return
	}

	logger.Info("Fee deactivated successfully", slog.String("fee_id", feeID))
	c.Status(http.StatusNoContent)
}
