package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, filename, invoice_number, invoice_date, agent, client, rfc,
	subtotal, iva, total, raw_text, paid_amount, remaining_amount, status, created_at`

// SaveInvoice persists a newly parsed invoice. The filename carries a unique
// constraint; a collision reports apperrors.ErrDuplicate so scans stay
// idempotent under concurrency.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.Filename,
		invoice.InvoiceNumber,
		invoice.Date,
		invoice.Agent,
		invoice.Client,
		invoice.RFC,
		invoice.Subtotal,
		invoice.IVA,
		invoice.Total,
		invoice.RawText,
		invoice.PaidAmount,
		invoice.RemainingAmount,
		invoice.Status,
		invoice.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: invoice file %s already imported", apperrors.ErrDuplicate, invoice.Filename)
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID retrieves a specific invoice by its unique identifier.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ExistsByFilename reports whether an invoice was already imported from the
// given source file.
func (r *PgxInvoiceRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE filename = $1);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, filename).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invoice filename %s: %w", filename, err)
	}
	return exists, nil
}

// ListInvoices retrieves invoices matching the filter, newest first.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Agent != nil {
		args = append(args, "%"+*filter.Agent+"%")
		query += fmt.Sprintf(" AND agent ILIKE $%d", len(args))
	}
	if filter.Client != nil {
		args = append(args, "%"+*filter.Client+"%")
		query += fmt.Sprintf(" AND client ILIKE $%d", len(args))
	}
	query += ` ORDER BY created_at DESC, invoice_number DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// scanInvoice reads one invoice from a row in invoiceColumns order.
func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := row.Scan(
		&invoice.InvoiceID,
		&invoice.Filename,
		&invoice.InvoiceNumber,
		&invoice.Date,
		&invoice.Agent,
		&invoice.Client,
		&invoice.RFC,
		&invoice.Subtotal,
		&invoice.IVA,
		&invoice.Total,
		&invoice.RawText,
		&invoice.PaidAmount,
		&invoice.RemainingAmount,
		&invoice.Status,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
