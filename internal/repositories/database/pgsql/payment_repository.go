package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, invoice_id, transaction_id, amount, notes, applied_at`

// RegisterPayment inserts a payment and updates the invoice and deposit
// aggregates in one database transaction. Both parent rows are locked with
// SELECT ... FOR UPDATE, always invoice first then deposit, and the
// allocation bounds are validated against the locked values. Concurrent
// allocations therefore serialize on the rows and cannot overdraw either
// side.
func (r *PgxPaymentRepository) RegisterPayment(ctx context.Context, payment domain.Payment) (*domain.Payment, *domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	invoice, err := lockInvoice(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, nil, err
	}
	deposit, err := lockTransaction(ctx, tx, payment.TransactionID)
	if err != nil {
		return nil, nil, err
	}

	if err := domain.ValidateAllocation(invoice, deposit, payment.Amount); err != nil {
		return nil, nil, err
	}

	insertQuery := `
		INSERT INTO invoice_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, insertQuery,
		payment.PaymentID,
		payment.InvoiceID,
		payment.TransactionID,
		payment.Amount,
		payment.Notes,
		payment.AppliedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	invoice.ApplyPaidAmount(invoice.PaidAmount.Add(payment.Amount))
	if err := updateInvoiceAggregates(ctx, tx, invoice); err != nil {
		return nil, nil, err
	}

	deposit.AllocatedAmount = deposit.AllocatedAmount.Add(payment.Amount)
	if err := updateTransactionAllocated(ctx, tx, deposit); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &payment, invoice, nil
}

// RevertPayment deletes a payment and subtracts its amount from both parent
// aggregates, under the same lock ordering as RegisterPayment.
func (r *PgxPaymentRepository) RevertPayment(ctx context.Context, paymentID string) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var payment domain.Payment
	err = tx.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM invoice_payments WHERE payment_id = $1 FOR UPDATE;
	`, paymentID).Scan(
		&payment.PaymentID,
		&payment.InvoiceID,
		&payment.TransactionID,
		&payment.Amount,
		&payment.Notes,
		&payment.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	invoice, err := lockInvoice(ctx, tx, payment.InvoiceID)
	if err != nil {
		return nil, err
	}
	deposit, err := lockTransaction(ctx, tx, payment.TransactionID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_payments WHERE payment_id = $1;`, paymentID); err != nil {
		return nil, fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}

	invoice.ApplyPaidAmount(invoice.PaidAmount.Sub(payment.Amount))
	if err := updateInvoiceAggregates(ctx, tx, invoice); err != nil {
		return nil, err
	}

	deposit.AllocatedAmount = deposit.AllocatedAmount.Sub(payment.Amount)
	if err := updateTransactionAllocated(ctx, tx, deposit); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListPaymentsByInvoice retrieves the payments applied to an invoice, joined
// with the deposits that funded them, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentWithTransaction, error) {
	query := `
		SELECT p.payment_id, p.invoice_id, p.transaction_id, p.amount, p.notes, p.applied_at,
		       t.txn_date, t.description, t.tracking_key
		FROM invoice_payments p
		JOIN bank_transactions t ON t.transaction_id = p.transaction_id
		WHERE p.invoice_id = $1
		ORDER BY p.applied_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	payments := []domain.PaymentWithTransaction{}
	for rows.Next() {
		var p domain.PaymentWithTransaction
		err := rows.Scan(
			&p.PaymentID,
			&p.InvoiceID,
			&p.TransactionID,
			&p.Amount,
			&p.Notes,
			&p.AppliedAt,
			&p.TransactionDate,
			&p.TransactionDescription,
			&p.TrackingKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating payment rows: %w", err)
	}
	return payments, nil
}

// ListPaymentsByTransaction retrieves the payments drawn from a deposit,
// joined with the invoices they funded, oldest first.
func (r *PgxPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentWithInvoice, error) {
	query := `
		SELECT p.payment_id, p.invoice_id, p.transaction_id, p.amount, p.notes, p.applied_at,
		       i.invoice_number, i.client, i.total
		FROM invoice_payments p
		JOIN invoices i ON i.invoice_id = p.invoice_id
		WHERE p.transaction_id = $1
		ORDER BY p.applied_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	payments := []domain.PaymentWithInvoice{}
	for rows.Next() {
		var p domain.PaymentWithInvoice
		err := rows.Scan(
			&p.PaymentID,
			&p.InvoiceID,
			&p.TransactionID,
			&p.Amount,
			&p.Notes,
			&p.AppliedAt,
			&p.InvoiceNumber,
			&p.Client,
			&p.InvoiceTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating payment rows: %w", err)
	}
	return payments, nil
}

// lockInvoice reads an invoice under FOR UPDATE inside tx.
func lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`

	invoice, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// lockTransaction reads a deposit under FOR UPDATE inside tx.
func lockTransaction(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM bank_transactions WHERE transaction_id = $1 FOR UPDATE;`

	txn, err := scanBankTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to lock transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// updateInvoiceAggregates writes the recomputed paid fields of an invoice.
func updateInvoiceAggregates(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice) error {
	_, err := tx.Exec(ctx, `
		UPDATE invoices
		SET paid_amount = $2, remaining_amount = $3, status = $4
		WHERE invoice_id = $1;
	`, invoice.InvoiceID, invoice.PaidAmount, invoice.RemainingAmount, invoice.Status)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s aggregates: %w", invoice.InvoiceID, err)
	}
	return nil
}

// updateTransactionAllocated writes the recomputed allocation of a deposit.
func updateTransactionAllocated(ctx context.Context, tx pgx.Tx, txn *domain.BankTransaction) error {
	_, err := tx.Exec(ctx, `
		UPDATE bank_transactions
		SET allocated_amount = $2
		WHERE transaction_id = $1;
	`, txn.TransactionID, txn.AllocatedAmount)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s allocation: %w", txn.TransactionID, err)
	}
	return nil
}
