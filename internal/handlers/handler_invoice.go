package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceSvc portssvc.InvoiceSvcFacade
	paymentSvc portssvc.PaymentSvcFacade
	scannerSvc portssvc.ScannerSvc
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(invoiceSvc portssvc.InvoiceSvcFacade, paymentSvc portssvc.PaymentSvcFacade, scannerSvc portssvc.ScannerSvc) *invoiceHandler {
	return &invoiceHandler{
		invoiceSvc: invoiceSvc,
		paymentSvc: paymentSvc,
		scannerSvc: scannerSvc,
	}
}

// registerInvoiceRoutes wires the invoice endpoints into the API group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceSvc portssvc.InvoiceSvcFacade, paymentSvc portssvc.PaymentSvcFacade, scannerSvc portssvc.ScannerSvc) {
	h := newInvoiceHandler(invoiceSvc, paymentSvc, scannerSvc)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("/scan", h.scanInvoices)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.GET("/:invoiceID/payments", h.listInvoicePayments)
		invoices.POST("/:invoiceID/payments", h.registerPayment)
	}
}

// scanInvoices imports every new PDF from the invoice directory.
func (h *invoiceHandler) scanInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.scannerSvc.ScanInvoiceDirectory(c.Request.Context())
	if err != nil {
		logger.Error("Invoice scan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan invoice directory"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// listInvoices returns invoices matching the query filters.
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.invoiceSvc.ListInvoices(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getInvoice returns a single invoice by ID.
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceSvc.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoicePayments returns the payment history of an invoice.
func (h *invoiceHandler) listInvoicePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	payments, err := h.invoiceSvc.ListInvoicePayments(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		logger.Error("Failed to list invoice payments", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// registerPayment applies part of a deposit to the invoice.
func (h *invoiceHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("invoiceID")

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.paymentSvc.RegisterPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondPaymentError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
