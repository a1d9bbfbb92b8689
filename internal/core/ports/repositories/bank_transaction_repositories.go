package repositories

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// TransactionFilter narrows deposit listings. Nil fields match everything.
type TransactionFilter struct {
	Unallocated bool
	Agent       *string
}

// BankTransactionReader defines read operations for bank deposit data.
type BankTransactionReader interface {
	// FindTransactionByID retrieves a specific deposit by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListTransactions retrieves deposits matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for bank deposit data.
type BankTransactionWriter interface {
	// ReplaceAllTransactions atomically discards every stored deposit, every
	// payment, and every invoice's paid aggregates, then inserts the freshly
	// parsed rows. This is the statement rescan: the statement file is the
	// source of truth and a rescan starts reconciliation over.
	ReplaceAllTransactions(ctx context.Context, transactions []domain.BankTransaction) error

	// UpdateTransactionFields updates the manually editable fields of a
	// deposit (agent label and legacy invoice association).
	UpdateTransactionFields(ctx context.Context, transactionID string, agent *string, associatedInvoices *string) (*domain.BankTransaction, error)
}

// BankTransactionRepositoryFacade combines all deposit repository interfaces.
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
