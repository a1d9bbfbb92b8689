package services

import (
	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
	portssvc "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/services"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, extractor portssvc.TextExtractor, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.PaymentRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.PaymentRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo)
	container.Scanner = NewScannerService(extractor, repos.InvoiceRepo, repos.TransactionRepo, cfg.InvoiceDir, cfg.BankStatementPath)

	return container
}
