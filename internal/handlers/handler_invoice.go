package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	portssvc "github.com/SscSPs/vendor_invoicing/internal/core/ports/services"
	"github.com/SscSPs/vendor_invoicing/internal/dto"
	"github.com/SscSPs/vendor_invoicing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	workflowService portssvc.InvoiceWorkflowSvcFacade
	queryService    portssvc.InvoiceQuerySvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(ws portssvc.InvoiceWorkflowSvcFacade, qs portssvc.InvoiceQuerySvcFacade) *invoiceHandler {
	return &invoiceHandler{
		workflowService: ws,
		queryService:    qs,
	}
}

// RegisterInvoiceRoutes registers routes related to invoices and their payments.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, ws portssvc.InvoiceWorkflowSvcFacade, qs portssvc.InvoiceQuerySvcFacade) {
	registerValidators()
	h := newInvoiceHandler(ws, qs)
	ph := newPaymentHandler(ws, qs)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.POST("/:invoiceID/submit", h.submitInvoice)
		invoices.POST("/:invoiceID/approve", h.approveInvoice)
		invoices.POST("/:invoiceID/reject", h.rejectInvoice)
		invoices.POST("/:invoiceID/resubmit", h.resubmitInvoice)
		invoices.GET("/:invoiceID/events", h.listInvoiceEvents)
		invoices.GET("/:invoiceID/payments", ph.listPayments)
		invoices.POST("/:invoiceID/payments", ph.recordPayment)
	}

	rg.POST("/payments/:paymentID/reverse", ph.reversePayment)
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Description Creates an invoice in pending_submission owned by the calling vendor
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not a vendor"
// @Failure 409 {object} map[string]string "Invoice number already used"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := h.workflowService.CreateInvoice(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoices newest first. Vendors only see their own.
// @Tags invoices
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "Filter by status"
// @Param   vendorID query string false "Filter by vendor (admin and accountant only)"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.queryService.ListInvoices(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with its line items, total paid and balance due
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := h.queryService.GetInvoice(c.Request.Context(), c.Param("invoiceID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Edit a draft invoice
// @Description Replaces the invoice number, tax or line items of a draft the vendor owns
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not an editable draft"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := h.workflowService.EditInvoice(c.Request.Context(), c.Param("invoiceID"), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

type transitionFunc func(c *gin.Context, invoiceID string, actor domain.Actor) (*domain.InvoiceProjection, error)

func (h *invoiceHandler) handleTransition(c *gin.Context, fallbackMsg string, run transitionFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	invoice, err := run(c, c.Param("invoiceID"), actor)
	if err != nil {
		respondWithError(c, err, fallbackMsg)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// submitInvoice godoc
// @Summary Submit a draft invoice
// @Description Vendor sends a draft with at least one line item and a positive total to the admin
// @Tags invoice-workflow
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invoice not ready for submission"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/submit [post]
func (h *invoiceHandler) submitInvoice(c *gin.Context) {
	h.handleTransition(c, "Failed to submit invoice", func(c *gin.Context, id string, actor domain.Actor) (*domain.InvoiceProjection, error) {
		return h.workflowService.Submit(c.Request.Context(), id, actor)
	})
}

// approveInvoice godoc
// @Summary Approve an invoice
// @Description Admin approves a submitted invoice and forwards it to accounting
// @Tags invoice-workflow
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/approve [post]
func (h *invoiceHandler) approveInvoice(c *gin.Context) {
	h.handleTransition(c, "Failed to approve invoice", func(c *gin.Context, id string, actor domain.Actor) (*domain.InvoiceProjection, error) {
		return h.workflowService.Approve(c.Request.Context(), id, actor)
	})
}

// rejectInvoice godoc
// @Summary Reject an invoice
// @Description Admin or accountant sends the invoice back to the vendor. A reason is required.
// @Tags invoice-workflow
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   rejection body dto.RejectInvoiceRequest true "Rejection reason"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/reject [post]
func (h *invoiceHandler) rejectInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RejectInvoiceRequest
	// An empty body is an empty reason and is reported as such by the workflow.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for RejectInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handleTransition(c, "Failed to reject invoice", func(c *gin.Context, id string, actor domain.Actor) (*domain.InvoiceProjection, error) {
		return h.workflowService.Reject(c.Request.Context(), id, actor, req.Reason)
	})
}

// resubmitInvoice godoc
// @Summary Resubmit a rejected invoice
// @Description Vendor reopens a rejected invoice as a draft, clearing the rejection
// @Tags invoice-workflow
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Illegal transition"
// @Failure 503 {object} map[string]string "Invoice busy, retry"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/resubmit [post]
func (h *invoiceHandler) resubmitInvoice(c *gin.Context) {
	h.handleTransition(c, "Failed to resubmit invoice", func(c *gin.Context, id string, actor domain.Actor) (*domain.InvoiceProjection, error) {
		return h.workflowService.Resubmit(c.Request.Context(), id, actor)
	})
}

// listInvoiceEvents godoc
// @Summary List an invoice's workflow events
// @Description Returns the audit trail of committed commands, oldest first
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.ListWorkflowEventsResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list events"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/events [get]
func (h *invoiceHandler) listInvoiceEvents(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	events, err := h.queryService.ListInvoiceEvents(c.Request.Context(), c.Param("invoiceID"), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, dto.ListWorkflowEventsResponse{Events: events})
}
