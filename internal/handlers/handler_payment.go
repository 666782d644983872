package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/schoolfees/school_fees_app/internal/core/ports/services"
	"github.com/schoolfees/school_fees_app/internal/dto"
	"github.com/schoolfees/school_fees_app/internal/middleware"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers routes related to payments. The amount-due
// read lives under /invoices because it is an invoice-level figure.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:paymentID", h.getPaymentByID)
		payments.PUT("/:paymentID", h.updatePayment)
	}

	rg.GET("/invoices/:invoiceID/amount-due", h.getAmountDue)
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment against an invoice and settles the invoice's status in the same transaction (admin only)
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or amount exceeds due"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.RecordPayment(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded successfully",
		slog.String("payment_id", resp.Payment.PaymentID),
		slog.String("invoice_id", req.InvoiceID))
	c.JSON(http.StatusCreated, resp)
}

// getPaymentByID godoc
// @Summary Get a payment by ID
// @Description Retrieves a payment; parents only see payments against their own invoices
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPaymentByID(c *gin.Context) {
	paymentID := c.Param("paymentID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), paymentID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves a filtered page of payments; parent callers are restricted to their own
// @Tags payments
// @Produce  json
// @Param   studentId query string false "Student filter"
// @Param   invoiceId query string false "Invoice filter"
// @Param   status query string false "Payment status filter"
// @Param   method query string false "Payment method filter"
// @Param   startDate query string false "Transaction date window start (YYYY-MM-DD)"
// @Param   endDate query string false "Transaction date window end (YYYY-MM-DD)"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updatePayment godoc
// @Summary Update a payment
// @Description Edits payment metadata or status; amount is immutable and a status change re-reconciles the owning invoice (admin only)
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or status change would overshoot total"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /payments/{paymentID} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), paymentID, req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update payment")
		return
	}

	logger.Info("Payment updated successfully", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// getAmountDue godoc
// @Summary Get the amount due on an invoice
// @Description Returns the invoice total, the sum of completed payments, and the remainder
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.AmountDueResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to compute amount due"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/amount-due [get]
func (h *paymentHandler) getAmountDue(c *gin.Context) {
	invoiceID := c.Param("invoiceID")

	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.paymentService.GetAmountDue(c.Request.Context(), invoiceID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to compute amount due")
		return
	}

	c.JSON(http.StatusOK, resp)
}
