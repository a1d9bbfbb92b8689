package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
)

// invoiceService provides read access to imported invoices.
type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewInvoiceService creates a new InvoiceSvcFacade.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GetInvoiceByID retrieves a specific invoice by its ID.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves invoices matching the query filters.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoices, err := s.invoiceRepo.ListInvoices(ctx, portsrepo.InvoiceFilter{
		Status: params.Status,
		Agent:  params.Agent,
		Client: params.Client,
	})
	if err != nil {
		logger.Error("Failed to list invoices", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	return &dto.ListInvoicesResponse{
		Invoices: dto.ToInvoiceResponses(invoices),
		Total:    len(invoices),
	}, nil
}

// ListInvoicePayments retrieves the payment history of an invoice. The
// invoice is looked up first so an unknown ID reports not found instead of
// an empty history.
func (s *invoiceService) ListInvoicePayments(ctx context.Context, invoiceID string) ([]dto.InvoicePaymentResponse, error) {
	if _, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("finding invoice %s: %w", invoiceID, err)
	}

	payments, err := s.paymentRepo.ListPaymentsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments for invoice %s: %w", invoiceID, err)
	}
	return dto.ToInvoicePaymentResponses(payments), nil
}
