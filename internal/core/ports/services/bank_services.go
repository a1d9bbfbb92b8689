package services

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
)

// TransactionReaderSvc defines read operations for bank deposit data.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific deposit by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListTransactions retrieves deposits matching the query filters.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListTransactionPayments retrieves the allocation breakdown of a deposit.
	ListTransactionPayments(ctx context.Context, transactionID string) ([]dto.TransactionPaymentResponse, error)
}

// TransactionWriterSvc defines write operations for bank deposit data.
type TransactionWriterSvc interface {
	// UpdateTransaction edits the agent label and the legacy invoice
	// association of a deposit. An association whose assigned total exceeds
	// the deposit amount is rejected.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.BankTransaction, error)
}

// TransactionSvcFacade combines all deposit service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
