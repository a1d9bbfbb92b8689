package repositories

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// InvoiceFilter narrows invoice listings. Nil fields match everything.
type InvoiceFilter struct {
	Status *domain.PaymentStatus
	Agent  *string
	Client *string
}

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ExistsByFilename reports whether an invoice was already imported from the given source file.
	ExistsByFilename(ctx context.Context, filename string) (bool, error)

	// ListInvoices retrieves invoices matching the filter, newest first.
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoice persists a newly parsed invoice. A filename collision returns apperrors.ErrDuplicate.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
