package dto

// ScanInvoicesResponse summarizes one pass over the invoice directory.
// Skipped counts PDFs whose filename was already imported; Failed counts
// files whose text could not be extracted or parsed.
type ScanInvoicesResponse struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ScanBankStatementResponse summarizes a statement import. Every rescan
// replaces the previous import wholesale, so Imported is the full row count.
type ScanBankStatementResponse struct {
	Imported int `json:"imported"`
}
