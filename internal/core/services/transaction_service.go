package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
)

// transactionService provides access to imported bank deposits.
type transactionService struct {
	transactionRepo portsrepo.BankTransactionRepositoryFacade
	paymentRepo     portsrepo.PaymentRepositoryFacade
}

// NewTransactionService creates a new TransactionSvcFacade.
func NewTransactionService(transactionRepo portsrepo.BankTransactionRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		paymentRepo:     paymentRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a specific deposit by its ID.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves deposits matching the query filters.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.transactionRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		Unallocated: params.Unallocated,
		Agent:       params.Agent,
	})
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToBankTransactionResponses(txns),
		Total:        len(txns),
	}, nil
}

// ListTransactionPayments retrieves the allocation breakdown of a deposit.
func (s *transactionService) ListTransactionPayments(ctx context.Context, transactionID string) ([]dto.TransactionPaymentResponse, error) {
	if _, err := s.transactionRepo.FindTransactionByID(ctx, transactionID); err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transactionID, err)
	}

	payments, err := s.paymentRepo.ListPaymentsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing payments for transaction %s: %w", transactionID, err)
	}
	return dto.ToTransactionPaymentResponses(payments), nil
}

// UpdateTransaction edits the agent label and the legacy invoice association
// of a deposit. An association whose assigned total exceeds the deposit
// amount is rejected before anything is written.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.BankTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transactionID, err)
	}

	var associated *string
	if req.AssociatedInvoices != nil {
		assigned := domain.TotalAssigned(req.AssociatedInvoices.Refs)
		if limit := txn.Amount.Abs(); assigned.GreaterThan(limit) {
			return nil, &apperrors.AllocationError{
				Reason:    apperrors.ReasonExceedsTransactionRemaining,
				Limit:     limit,
				Applied:   decimal.Zero,
				Attempted: assigned,
			}
		}
		encoded, err := domain.EncodeAssociatedInvoices(req.AssociatedInvoices.Refs)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		associated = &encoded
	}

	updated, err := s.transactionRepo.UpdateTransactionFields(ctx, transactionID, req.Agent, associated)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return updated, nil
}
