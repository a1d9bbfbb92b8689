package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ReplaceAllTransactions(ctx context.Context, transactions []domain.BankTransaction) error {
	args := m.Called(ctx, transactions)
	return args.Error(0)
}

func (m *MockBankTransactionRepository) UpdateTransactionFields(ctx context.Context, transactionID string, agent *string, associatedInvoices *string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID, agent, associatedInvoices)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentWithTransaction, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithTransaction), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByTransaction(ctx context.Context, transactionID string) ([]domain.PaymentWithInvoice, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentWithInvoice), args.Error(1)
}

func (m *MockPaymentRepository) RegisterPayment(ctx context.Context, payment domain.Payment) (*domain.Payment, *domain.Invoice, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Get(1).(*domain.Invoice), args.Error(2)
}

func (m *MockPaymentRepository) RevertPayment(ctx context.Context, paymentID string) (*domain.Invoice, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

// --- Mock TextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

var _ portssvc.TextExtractor = (*MockTextExtractor)(nil)

func (m *MockTextExtractor) ExtractText(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}
