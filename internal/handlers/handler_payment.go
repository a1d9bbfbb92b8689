package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
)

// paymentHandler handles HTTP requests that address payments directly.
type paymentHandler struct {
	paymentSvc portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(paymentSvc portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentSvc: paymentSvc}
}

// registerPaymentRoutes wires the payment endpoints into the API group.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentSvc portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentSvc)

	payments := rg.Group("/payments")
	{
		payments.DELETE("/:paymentID", h.revertPayment)
	}
}

// revertPayment deletes a payment and rolls back both aggregates.
func (h *paymentHandler) revertPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	invoice, err := h.paymentSvc.RevertPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to revert payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revert payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// respondPaymentError maps allocation failures to a 400 response that carries
// the numeric context, so a client can tell the user exactly how much room is
// left.
func respondPaymentError(c *gin.Context, logger *slog.Logger, err error) {
	var allocErr *apperrors.AllocationError
	if errors.As(err, &allocErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     allocErr.Error(),
			"reason":    allocErr.Reason,
			"limit":     allocErr.Limit,
			"applied":   allocErr.Applied,
			"attempted": allocErr.Attempted,
			"remaining": allocErr.Remaining(),
		})
		return
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice or transaction not found"})
		return
	}
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Payment operation failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment operation failed"})
}
