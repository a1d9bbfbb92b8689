package services

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice by its ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices matching the query filters.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListInvoicePayments retrieves the payment history of an invoice.
	ListInvoicePayments(ctx context.Context, invoiceID string) ([]dto.InvoicePaymentResponse, error)
}

// InvoiceSvcFacade combines all invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
}
