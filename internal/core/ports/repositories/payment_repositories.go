package repositories

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// ListPaymentsByInvoice retrieves the payments applied to an invoice,
	// joined with the deposits that funded them.
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentWithTransaction, error)

	// ListPaymentsByTransaction retrieves the payments drawn from a deposit,
	// joined with the invoices they funded.
	ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentWithInvoice, error)
}

// PaymentWriter defines write operations for payment data. Both writes
// revalidate the allocation bounds inside the database transaction under row
// locks and keep the invoice and deposit aggregates consistent with the
// payment rows.
type PaymentWriter interface {
	// RegisterPayment validates the allocation against the locked invoice and
	// deposit rows, inserts the payment, and updates both aggregates. It
	// returns the stored payment and the invoice as updated.
	RegisterPayment(ctx context.Context, payment domain.Payment) (*domain.Payment, *domain.Invoice, error)

	// RevertPayment deletes a payment and subtracts its amount from both
	// aggregates, returning the invoice as updated.
	RevertPayment(ctx context.Context, paymentID string) (*domain.Invoice, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
