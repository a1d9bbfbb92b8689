package services_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/services"
)

const invoiceText = `Folio: A 30475
Fecha: 20-Nov-2025
Agente: 04 - JUAN DIOS
Cliente: 0358 - DISTRIBUIDORA ACME SA DE CV
Subtotal: $5,000.00
IVA (16%): $800.00
Total: $5,800.00
`

const statementText = "ENCABEZADO " +
	"20/Nov/2025 SPEI RECIBIDO CVE RAST: 2025112012345 $11,248.52 $50,000.00 CLIENTE UNO " +
	"21/Nov/2025 DEPOSITO F-30480 $2,000.00 $52,000.00"

type ScannerServiceTestSuite struct {
	suite.Suite
	mockExtractor       *MockTextExtractor
	mockInvoiceRepo     *MockInvoiceRepository
	mockTransactionRepo *MockBankTransactionRepository
	service             portssvc.ScannerSvc
	invoiceDir          string
	statementPath       string
}

func (suite *ScannerServiceTestSuite) SetupTest() {
	suite.mockExtractor = new(MockTextExtractor)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockTransactionRepo = new(MockBankTransactionRepository)
	suite.invoiceDir = suite.T().TempDir()
	suite.statementPath = filepath.Join(suite.T().TempDir(), "estado_de_cuenta.pdf")
	suite.service = services.NewScannerService(suite.mockExtractor, suite.mockInvoiceRepo, suite.mockTransactionRepo, suite.invoiceDir, suite.statementPath)
}

func (suite *ScannerServiceTestSuite) addInvoiceFile(name string) {
	err := os.WriteFile(filepath.Join(suite.invoiceDir, name), []byte("pdf"), 0o644)
	suite.Require().NoError(err)
}

func (suite *ScannerServiceTestSuite) TestScanInvoiceDirectory_ImportsNewFiles() {
	ctx := context.Background()
	suite.addInvoiceFile("factura_30475.pdf")
	suite.addInvoiceFile("notas.txt") // not a PDF, must be ignored

	suite.mockInvoiceRepo.On("ExistsByFilename", ctx, "factura_30475.pdf").Return(false, nil).Once()
	suite.mockExtractor.On("ExtractText", filepath.Join(suite.invoiceDir, "factura_30475.pdf")).Return(invoiceText, nil).Once()

	var saved domain.Invoice
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Invoice) }).
		Return(nil).Once()

	summary, err := suite.service.ScanInvoiceDirectory(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Processed)
	suite.Equal(0, summary.Skipped)
	suite.Equal(0, summary.Failed)

	suite.NotEmpty(saved.InvoiceID)
	suite.Equal("factura_30475.pdf", saved.Filename)
	suite.Equal("30475", saved.InvoiceNumber)
	suite.Equal(domain.StatusPending, saved.Status)
	suite.True(saved.PaidAmount.IsZero())
	suite.True(saved.RemainingAmount.Equal(decimal.RequireFromString("5800")))
	suite.True(saved.Total.Equal(saved.RemainingAmount))
	suite.Equal(invoiceText, saved.RawText)

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockExtractor.AssertExpectations(suite.T())
}

func (suite *ScannerServiceTestSuite) TestScanInvoiceDirectory_SkipsKnownFilenames() {
	ctx := context.Background()
	suite.addInvoiceFile("factura_30475.pdf")

	suite.mockInvoiceRepo.On("ExistsByFilename", ctx, "factura_30475.pdf").Return(true, nil).Once()

	summary, err := suite.service.ScanInvoiceDirectory(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.Equal(1, summary.Skipped)
	suite.mockExtractor.AssertNotCalled(suite.T(), "ExtractText", mock.Anything)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *ScannerServiceTestSuite) TestScanInvoiceDirectory_ExtractionFailureIsCounted() {
	ctx := context.Background()
	suite.addInvoiceFile("buena.pdf")
	suite.addInvoiceFile("rota.pdf")

	suite.mockInvoiceRepo.On("ExistsByFilename", ctx, mock.AnythingOfType("string")).Return(false, nil).Twice()
	suite.mockExtractor.On("ExtractText", filepath.Join(suite.invoiceDir, "buena.pdf")).Return(invoiceText, nil).Once()
	suite.mockExtractor.On("ExtractText", filepath.Join(suite.invoiceDir, "rota.pdf")).Return("", apperrors.ErrExtraction).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	summary, err := suite.service.ScanInvoiceDirectory(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, summary.Processed)
	suite.Equal(1, summary.Failed)
	suite.Require().Len(summary.Errors, 1)
	suite.Contains(summary.Errors[0], "rota.pdf")
}

func (suite *ScannerServiceTestSuite) TestScanInvoiceDirectory_DuplicateSaveCountsSkipped() {
	ctx := context.Background()
	suite.addInvoiceFile("factura_30475.pdf")

	suite.mockInvoiceRepo.On("ExistsByFilename", ctx, "factura_30475.pdf").Return(false, nil).Once()
	suite.mockExtractor.On("ExtractText", mock.AnythingOfType("string")).Return(invoiceText, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(apperrors.ErrDuplicate).Once()

	summary, err := suite.service.ScanInvoiceDirectory(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, summary.Processed)
	suite.Equal(1, summary.Skipped)
}

func (suite *ScannerServiceTestSuite) TestScanInvoiceDirectory_StorageErrorAborts() {
	ctx := context.Background()
	suite.addInvoiceFile("factura_30475.pdf")
	dbErr := errors.New("connection lost")

	suite.mockInvoiceRepo.On("ExistsByFilename", ctx, "factura_30475.pdf").Return(false, nil).Once()
	suite.mockExtractor.On("ExtractText", mock.AnythingOfType("string")).Return(invoiceText, nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(dbErr).Once()

	_, err := suite.service.ScanInvoiceDirectory(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
}

func (suite *ScannerServiceTestSuite) TestScanBankStatement_ReplacesStoredDeposits() {
	ctx := context.Background()

	suite.mockExtractor.On("ExtractText", suite.statementPath).Return(statementText, nil).Once()

	var replaced []domain.BankTransaction
	suite.mockTransactionRepo.On("ReplaceAllTransactions", ctx, mock.AnythingOfType("[]domain.BankTransaction")).
		Run(func(args mock.Arguments) { replaced = args.Get(1).([]domain.BankTransaction) }).
		Return(nil).Once()

	summary, err := suite.service.ScanBankStatement(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, summary.Imported)
	suite.Require().Len(replaced, 2)

	first := replaced[0]
	suite.Equal("2025-11-20", first.Date)
	suite.Require().NotNil(first.Agent)
	suite.Equal("ENCABEZADO", *first.Agent)
	suite.True(first.Amount.Equal(decimal.RequireFromString("11248.52")))
	suite.True(first.AllocatedAmount.IsZero())
	suite.Require().NotNil(first.TrackingKey)
	suite.Equal("2025112012345", *first.TrackingKey)

	second := replaced[1]
	suite.Equal("2025-11-21", second.Date)
	suite.Require().NotNil(second.Agent)
	suite.Equal("CLIENTE UNO", *second.Agent)
	suite.Equal("30480", second.AssociatedInvoices)

	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *ScannerServiceTestSuite) TestScanBankStatement_ExtractionError() {
	ctx := context.Background()
	suite.mockExtractor.On("ExtractText", suite.statementPath).Return("", apperrors.ErrExtraction).Once()

	_, err := suite.service.ScanBankStatement(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrExtraction)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "ReplaceAllTransactions", mock.Anything, mock.Anything)
}

func TestScannerService(t *testing.T) {
	suite.Run(t, new(ScannerServiceTestSuite))
}
