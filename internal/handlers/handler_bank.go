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

// bankHandler handles HTTP requests related to the bank statement.
type bankHandler struct {
	transactionSvc portssvc.TransactionSvcFacade
	scannerSvc     portssvc.ScannerSvc
}

// newBankHandler creates a new bankHandler.
func newBankHandler(transactionSvc portssvc.TransactionSvcFacade, scannerSvc portssvc.ScannerSvc) *bankHandler {
	return &bankHandler{
		transactionSvc: transactionSvc,
		scannerSvc:     scannerSvc,
	}
}

// registerBankRoutes wires the bank statement endpoints into the API group.
func registerBankRoutes(rg *gin.RouterGroup, transactionSvc portssvc.TransactionSvcFacade, scannerSvc portssvc.ScannerSvc) {
	h := newBankHandler(transactionSvc, scannerSvc)

	bank := rg.Group("/bank")
	{
		bank.POST("/scan", h.scanStatement)
		bank.GET("/transactions", h.listTransactions)
		bank.GET("/transactions/:transactionID", h.getTransaction)
		bank.GET("/transactions/:transactionID/payments", h.listTransactionPayments)
		bank.PUT("/transactions/:transactionID", h.updateTransaction)
	}
}

// scanStatement reimports the statement PDF, replacing the stored deposits.
func (h *bankHandler) scanStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.scannerSvc.ScanBankStatement(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrExtraction) {
			logger.Warn("Statement could not be read", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Statement scan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan bank statement"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// listTransactions returns deposits matching the query filters.
func (h *bankHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.transactionSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction returns a single deposit by ID.
func (h *bankHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, err := h.transactionSvc.GetTransactionByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}

// listTransactionPayments returns the allocation breakdown of a deposit.
func (h *bankHandler) listTransactionPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	payments, err := h.transactionSvc.ListTransactionPayments(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to list transaction payments", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// updateTransaction edits the agent label or invoice association of a deposit.
func (h *bankHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind transaction update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.transactionSvc.UpdateTransaction(c.Request.Context(), transactionID, req)
	if err != nil {
		respondPaymentError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBankTransactionResponse(txn))
}
