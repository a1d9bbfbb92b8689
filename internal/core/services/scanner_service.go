package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/middleware"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/parser"
)

// scannerService imports invoice PDFs and the bank statement into the store.
type scannerService struct {
	extractor         portssvc.TextExtractor
	invoiceRepo       portsrepo.InvoiceRepositoryFacade
	transactionRepo   portsrepo.BankTransactionRepositoryFacade
	invoiceDir        string
	bankStatementPath string
}

// NewScannerService creates a new ScannerSvc.
func NewScannerService(extractor portssvc.TextExtractor, invoiceRepo portsrepo.InvoiceRepositoryFacade, transactionRepo portsrepo.BankTransactionRepositoryFacade, invoiceDir, bankStatementPath string) portssvc.ScannerSvc {
	return &scannerService{
		extractor:         extractor,
		invoiceRepo:       invoiceRepo,
		transactionRepo:   transactionRepo,
		invoiceDir:        invoiceDir,
		bankStatementPath: bankStatementPath,
	}
}

var _ portssvc.ScannerSvc = (*scannerService)(nil)

// ScanInvoiceDirectory imports every PDF in the invoice directory whose
// filename is not yet in the store. The scan is idempotent on filename:
// rerunning it never duplicates an invoice. A file that fails extraction is
// counted and reported but does not stop the pass; a storage failure does.
func (s *scannerService) ScanInvoiceDirectory(ctx context.Context) (*dto.ScanInvoicesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := os.ReadDir(s.invoiceDir)
	if err != nil {
		logger.Error("Failed to read invoice directory", slog.String("dir", s.invoiceDir), slog.String("error", err.Error()))
		return nil, fmt.Errorf("reading invoice directory %s: %w", s.invoiceDir, err)
	}

	summary := &dto.ScanInvoicesResponse{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		filename := entry.Name()

		exists, err := s.invoiceRepo.ExistsByFilename(ctx, filename)
		if err != nil {
			logger.Error("Failed to check invoice filename", slog.String("filename", filename), slog.String("error", err.Error()))
			return nil, fmt.Errorf("checking filename %s: %w", filename, err)
		}
		if exists {
			summary.Skipped++
			continue
		}

		text, err := s.extractor.ExtractText(filepath.Join(s.invoiceDir, filename))
		if err != nil {
			logger.Warn("Invoice extraction failed", slog.String("filename", filename), slog.String("error", err.Error()))
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", filename, err))
			continue
		}

		invoice := invoiceFromFields(parser.ParseInvoice(text, filename), filename, text)
		if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Lost a race with a concurrent scan of the same file.
				summary.Skipped++
				continue
			}
			logger.Error("Failed to save invoice", slog.String("filename", filename), slog.String("error", err.Error()))
			return nil, fmt.Errorf("saving invoice %s: %w", filename, err)
		}
		summary.Processed++
	}

	logger.Info("Invoice scan completed",
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// ScanBankStatement parses the statement PDF and replaces the stored
// deposits with its rows. The statement file is the source of truth, so the
// previous import, including every payment drawn from it, is discarded.
func (s *scannerService) ScanBankStatement(ctx context.Context) (*dto.ScanBankStatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	text, err := s.extractor.ExtractText(s.bankStatementPath)
	if err != nil {
		logger.Error("Statement extraction failed", slog.String("path", s.bankStatementPath), slog.String("error", err.Error()))
		return nil, err
	}

	rows := parser.ParseBankStatement(text)
	transactions := make([]domain.BankTransaction, len(rows))
	now := time.Now().UTC()
	for i, row := range rows {
		transactions[i] = transactionFromFields(row, now)
	}

	if err := s.transactionRepo.ReplaceAllTransactions(ctx, transactions); err != nil {
		logger.Error("Failed to replace bank transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("replacing bank transactions: %w", err)
	}

	logger.Info("Bank statement imported", slog.Int("imported", len(transactions)))
	return &dto.ScanBankStatementResponse{Imported: len(transactions)}, nil
}

// invoiceFromFields builds a fresh, unpaid invoice from parsed fields.
func invoiceFromFields(fields parser.InvoiceFields, filename, rawText string) domain.Invoice {
	return domain.Invoice{
		InvoiceID:       uuid.NewString(),
		Filename:        filename,
		InvoiceNumber:   fields.InvoiceNumber,
		Date:            fields.Date,
		Agent:           fields.Agent,
		Client:          fields.Client,
		RFC:             fields.RFC,
		Subtotal:        fields.Subtotal,
		IVA:             fields.IVA,
		Total:           fields.Total,
		RawText:         rawText,
		PaidAmount:      decimal.Zero,
		RemainingAmount: fields.Total,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}

// transactionFromFields builds an unallocated deposit from a parsed row.
func transactionFromFields(row parser.BankTransactionFields, now time.Time) domain.BankTransaction {
	balance := row.Balance
	txn := domain.BankTransaction{
		TransactionID:      uuid.NewString(),
		Date:               row.Date,
		Description:        row.Description,
		Amount:             row.Amount,
		Balance:            &balance,
		AllocatedAmount:    decimal.Zero,
		AssociatedInvoices: row.AssociatedInvoices,
		CreatedAt:          now,
	}
	if agent := strings.TrimSpace(row.Agent); agent != "" {
		txn.Agent = &agent
	}
	if row.Beneficiary != "" {
		beneficiary := row.Beneficiary
		txn.Beneficiary = &beneficiary
	}
	if row.TrackingKey != "" {
		trackingKey := row.TrackingKey
		txn.TrackingKey = &trackingKey
	}
	return txn
}
