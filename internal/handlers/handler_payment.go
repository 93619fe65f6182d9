package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vendor_invoicing/internal/core/ports/services"
	"github.com/SscSPs/vendor_invoicing/internal/dto"
	"github.com/SscSPs/vendor_invoicing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	ledgerService portssvc.PaymentLedgerSvc
	queryService  portssvc.InvoiceQuerySvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ls portssvc.PaymentLedgerSvc, qs portssvc.InvoiceQuerySvcFacade) *paymentHandler {
	return &paymentHandler{
		ledgerService: ls,
		queryService:  qs,
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Accountant posts a processed payment. Overpayments are rejected. The invoice becomes paid when its balance reaches zero.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResultResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 422 {object} map[string]string "Amount exceeds balance due"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [post]
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

	result, err := h.ledgerService.RecordPayment(c.Request.Context(), c.Param("invoiceID"), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResultResponse(result))
}

// listPayments godoc
// @Summary List an invoice's payments
// @Description Lists payments in every status together with total paid and balance due
// @Tags payments
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.queryService.ListPayments(c.Request.Context(), c.Param("invoiceID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reversePayment godoc
// @Summary Reverse a payment
// @Description Accountant reverses a processed payment. The invoice is recomputed from the remaining payments.
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment not reversible"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /payments/{paymentID}/reverse [post]
func (h *paymentHandler) reversePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.ReversePayment(c.Request.Context(), c.Param("paymentID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to reverse payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResultResponse(result))
}
