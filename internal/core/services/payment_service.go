package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
)

// paymentService applies bank deposits to invoices.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewPaymentService creates a new PaymentSvcFacade.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.PaymentSvcFacade {
	return &paymentService{paymentRepo: paymentRepo}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RegisterPayment applies part of a deposit to an invoice. The bounds are
// checked here so obviously bad requests fail fast, and checked again by the
// repository under row locks, which is the authoritative check against
// concurrent allocations.
func (s *paymentService) RegisterPayment(ctx context.Context, invoiceID string, req dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, &apperrors.AllocationError{
			Reason:    apperrors.ReasonNonPositiveAmount,
			Attempted: req.Amount,
		}
	}

	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		InvoiceID:     invoiceID,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Notes:         req.Notes,
		AppliedAt:     time.Now().UTC(),
	}

	stored, invoice, err := s.paymentRepo.RegisterPayment(ctx, payment)
	if err != nil {
		logger.Warn("Payment rejected",
			slog.String("invoice_id", invoiceID),
			slog.String("transaction_id", req.TransactionID),
			slog.String("amount", req.Amount.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering payment on invoice %s: %w", invoiceID, err)
	}

	logger.Info("Payment registered",
		slog.String("payment_id", stored.PaymentID),
		slog.String("invoice_id", invoiceID),
		slog.String("transaction_id", req.TransactionID),
		slog.String("amount", stored.Amount.String()),
	)

	response := &dto.RegisterPaymentResponse{
		Payment: dto.ToPaymentResponse(stored),
		Invoice: dto.ToInvoiceResponse(invoice),
	}
	return response, nil
}

// RevertPayment deletes a payment and rolls its amount out of the invoice
// and deposit aggregates.
func (s *paymentService) RevertPayment(ctx context.Context, paymentID string) (*dto.InvoiceResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.paymentRepo.RevertPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("reverting payment %s: %w", paymentID, err)
	}

	logger.Info("Payment reverted",
		slog.String("payment_id", paymentID),
		slog.String("invoice_id", invoice.InvoiceID),
	)

	response := dto.ToInvoiceResponse(invoice)
	return &response, nil
}
