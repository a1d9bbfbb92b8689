package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceFields is the typed result of parsing one invoice PDF's text.
// Fields the heuristics could not match stay at their zero value; the parser
// never fails outright because invoices are heterogeneous and partial data
// beats a hard failure.
type InvoiceFields struct {
	InvoiceNumber string
	Date          *string
	Agent         *string
	Client        *string
	RFC           *string
	Subtotal      decimal.Decimal
	IVA           decimal.Decimal
	Total         decimal.Decimal
}

// ParseInvoice extracts structured invoice fields from PDF text and the
// source filename. Pure function of its inputs; each extraction rule is
// independent and tolerant of absence.
func ParseInvoice(text, filename string) InvoiceFields {
	fields := InvoiceFields{
		InvoiceNumber: extractFolio(text, filename),
		Agent:         extractAgent(text),
		Client:        extractClient(text),
		RFC:           extractRFC(text),
	}

	if date, ok := findDate(text); ok {
		fields.Date = &date
	}

	subtotal, _ := extractLabeledAmount(text, subtotalPattern)
	iva, _ := extractLabeledAmount(text, ivaPattern)
	fields.Subtotal = subtotal
	fields.IVA = iva

	if total, ok := extractLabeledAmount(text, totalPattern); ok {
		fields.Total = total
	} else {
		// No explicit total on the document; derive it.
		fields.Total = subtotal.Add(iva)
	}

	return fields
}

var (
	// "Folio: A 30475": optional letter prefix, then the digit run.
	folioPattern = regexp.MustCompile(`(?i)folio\s*:?\s*#?\s*(?:[A-Za-z]\s*)?(\d+)`)
	// CFDI-style filenames embed the folio after an underscore+letter
	// boundary, e.g. "CFDI_FACTURA_CREDITO_4.0_A_30475.pdf".
	filenameBoundaryDigits = regexp.MustCompile(`_[A-Za-z]_?(\d{4,})`)
	filenameAnyDigits      = regexp.MustCompile(`(\d{4,})`)
)

// extractFolio finds the invoice number: a labeled folio marker in the text,
// then a digit run embedded in the filename, then the filename stem.
func extractFolio(text, filename string) string {
	if m := folioPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if m := filenameBoundaryDigits.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	if m := filenameAnyDigits.FindStringSubmatch(stem); m != nil {
		return m[1]
	}
	return stem
}

// "Agente: 04 - JUAN DIOS" or "Agente: JUAN DIOS". The generic label match is
// used for every invoice; there is no fixed list of known salesperson names.
var agentPattern = regexp.MustCompile(`(?i)agente\s*:\s*(?:\d+\s*-\s*)?([^\n]+)`)

func extractAgent(text string) *string {
	m := agentPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	agent := strings.TrimSpace(m[1])
	if agent == "" {
		return nil
	}
	return &agent
}

// "Cliente: 0358 - DISTRIBUIDORA ACME SA DE CV". The numeric code and dash
// are required so address lines mentioning "cliente" don't match.
var clientPattern = regexp.MustCompile(`(?i)cliente\s*:\s*\d+\s*-\s*([^\n]+)`)

func extractClient(text string) *string {
	m := clientPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	client := strings.TrimSpace(m[1])
	if client == "" {
		return nil
	}
	return &client
}

var (
	clientSectionPattern = regexp.MustCompile(`(?i)datos\s+del\s+cliente`)
	// RFC shape: 3-4 letter root, 6-digit date, 2-3 char homoclave.
	rfcShapePattern = regexp.MustCompile(`\b[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{2,3}\b`)
	// Fallback: any 12-13 char alphanumeric code right after an RFC label.
	rfcLabelPattern = regexp.MustCompile(`(?i)rfc\s*:?\s*([A-Za-z0-9Ñ&]{12,13})\b`)
)

// extractRFC prefers an RFC-shaped code within 300 characters after the
// "Datos del Cliente" section header (the issuer's own RFC appears earlier in
// the document), falling back to the first code after any "RFC:" label.
func extractRFC(text string) *string {
	if loc := clientSectionPattern.FindStringIndex(text); loc != nil {
		window := text[loc[1]:]
		if len(window) > 300 {
			window = window[:300]
		}
		if rfc := rfcShapePattern.FindString(strings.ToUpper(window)); rfc != "" {
			return &rfc
		}
	}
	if m := rfcLabelPattern.FindStringSubmatch(text); m != nil {
		rfc := strings.ToUpper(m[1])
		return &rfc
	}
	return nil
}
