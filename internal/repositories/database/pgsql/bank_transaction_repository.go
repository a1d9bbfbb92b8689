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

type PgxBankTransactionRepository struct {
	BaseRepository
}

// newPgxBankTransactionRepository creates a new repository for bank deposit data.
func newPgxBankTransactionRepository(pool *pgxpool.Pool) portsrepo.BankTransactionRepositoryFacade {
	return &PgxBankTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const transactionColumns = `transaction_id, txn_date, agent, description, amount, balance,
	beneficiary, tracking_key, allocated_amount, associated_invoices, created_at`

// ReplaceAllTransactions atomically swaps the stored statement for a fresh
// import. Payments reference deposits, so they go first, and every invoice's
// paid aggregates are reset to unpaid before the old deposits are dropped.
// Either the whole rescan lands or none of it does.
func (r *PgxBankTransactionRepository) ReplaceAllTransactions(ctx context.Context, transactions []domain.BankTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_payments;`); err != nil {
		return fmt.Errorf("failed to clear payments: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE invoices
		SET paid_amount = 0, remaining_amount = total, status = $1;
	`, domain.StatusPending); err != nil {
		return fmt.Errorf("failed to reset invoice aggregates: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM bank_transactions;`); err != nil {
		return fmt.Errorf("failed to clear bank transactions: %w", err)
	}

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO bank_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, txn := range transactions {
		batch.Queue(insertQuery,
			txn.TransactionID,
			txn.Date,
			txn.Agent,
			txn.Description,
			txn.Amount,
			txn.Balance,
			txn.Beneficiary,
			txn.TrackingKey,
			txn.AllocatedAmount,
			txn.AssociatedInvoices,
			txn.CreatedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range transactions {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert bank transaction %s: %w", transactions[i].TransactionID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a specific deposit by its unique identifier.
func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`

	txn, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// buildListTransactionsQuery assembles the filtered deposit listing query.
func buildListTransactionsQuery(filter portsrepo.TransactionFilter) (string, []interface{}) {
	query := `SELECT ` + transactionColumns + ` FROM bank_transactions WHERE 1=1`
	args := []interface{}{}

	if filter.Unallocated {
		// A reconciliation candidate is a deposit (positive amount) with
		// unallocated room left.
		query += ` AND amount > 0 AND allocated_amount < ABS(amount)`
	}
	if filter.Agent != nil {
		args = append(args, "%"+*filter.Agent+"%")
		query += fmt.Sprintf(" AND agent ILIKE $%d", len(args))
	}
	query += ` ORDER BY txn_date DESC, created_at DESC;`
	return query, args
}

// ListTransactions retrieves deposits matching the filter, newest first.
func (r *PgxBankTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.BankTransaction, error) {
	query, args := buildListTransactionsQuery(filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		txn, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txns, nil
}

// UpdateTransactionFields updates the manually editable fields of a deposit.
// Nil arguments leave the stored value untouched.
func (r *PgxBankTransactionRepository) UpdateTransactionFields(ctx context.Context, transactionID string, agent *string, associatedInvoices *string) (*domain.BankTransaction, error) {
	query := `
		UPDATE bank_transactions
		SET agent = COALESCE($2, agent),
		    associated_invoices = COALESCE($3, associated_invoices)
		WHERE transaction_id = $1
		RETURNING ` + transactionColumns + `;
	`

	txn, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID, agent, associatedInvoices))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// scanBankTransaction reads one deposit from a row in transactionColumns order.
func scanBankTransaction(row pgx.Row) (*domain.BankTransaction, error) {
	var txn domain.BankTransaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Date,
		&txn.Agent,
		&txn.Description,
		&txn.Amount,
		&txn.Balance,
		&txn.Beneficiary,
		&txn.TrackingKey,
		&txn.AllocatedAmount,
		&txn.AssociatedInvoices,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}
