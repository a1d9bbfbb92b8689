package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceRef is one entry of the normalized associated-invoices field: an
// invoice number and the amount assigned to it from the deposit.
type InvoiceRef struct {
	Invoice string          `json:"invoice"`
	Amount  decimal.Decimal `json:"amount"`
}

// ParseAssociatedInvoices normalizes the legacy dual-format field. The stored
// value is either a JSON array of {invoice, amount} objects (new format) or a
// comma-separated list of invoice numbers (old format, amounts unknown).
// Readers must accept both; the ambiguity stops here and never reaches the
// allocation engine.
func ParseAssociatedInvoices(raw string) ([]InvoiceRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		var refs []InvoiceRef
		if strings.HasPrefix(raw, "{") {
			var single InvoiceRef
			if err := json.Unmarshal([]byte(raw), &single); err != nil {
				return nil, fmt.Errorf("%w: malformed associated invoices: %v", apperrors.ErrValidation, err)
			}
			refs = []InvoiceRef{single}
		} else if err := json.Unmarshal([]byte(raw), &refs); err != nil {
			return nil, fmt.Errorf("%w: malformed associated invoices: %v", apperrors.ErrValidation, err)
		}
		for _, ref := range refs {
			if ref.Invoice == "" {
				return nil, fmt.Errorf("%w: associated invoice entry missing invoice number", apperrors.ErrValidation)
			}
			if ref.Amount.IsNegative() {
				return nil, fmt.Errorf("%w: associated invoice %s has negative amount %s", apperrors.ErrValidation, ref.Invoice, ref.Amount)
			}
		}
		return refs, nil
	}

	// Old format: comma-separated invoice numbers, no per-invoice amounts.
	var refs []InvoiceRef
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		refs = append(refs, InvoiceRef{Invoice: part, Amount: decimal.Zero})
	}
	return refs, nil
}

// EncodeAssociatedInvoices serializes refs in the structured JSON form.
func EncodeAssociatedInvoices(refs []InvoiceRef) (string, error) {
	if len(refs) == 0 {
		return "", nil
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return "", fmt.Errorf("failed to encode associated invoices: %w", err)
	}
	return string(data), nil
}

// TotalAssigned sums the structured amounts of refs.
func TotalAssigned(refs []InvoiceRef) decimal.Decimal {
	sum := decimal.Zero
	for _, ref := range refs {
		sum = sum.Add(ref.Amount)
	}
	return sum
}
