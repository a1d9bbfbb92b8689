package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		TransactionRepo: newPgxBankTransactionRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
	}
}
