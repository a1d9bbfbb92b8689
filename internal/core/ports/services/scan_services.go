package services

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
)

// TextExtractor turns a PDF file on disk into plain text for the parsers.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// ScannerSvc defines the import operations that feed the store from the
// filesystem.
type ScannerSvc interface {
	// ScanInvoiceDirectory walks the configured invoice directory and imports
	// every PDF whose filename has not been imported before. Per-file
	// extraction failures are counted, not fatal.
	ScanInvoiceDirectory(ctx context.Context) (*dto.ScanInvoicesResponse, error)

	// ScanBankStatement parses the configured statement PDF and replaces the
	// stored deposits with its rows, resetting all reconciliation state.
	ScanBankStatement(ctx context.Context) (*dto.ScanBankStatementResponse, error)
}
