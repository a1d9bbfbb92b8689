package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyPattern matches statement money tokens: $ sign, optional minus,
// digit groups with thousands separators, mandatory 2-decimal fraction.
var currencyPattern = regexp.MustCompile(`\$-?[\d,]+\.\d{2}`)

// parseAmount converts a currency token like "$11,248.52" or "1,234.56" to a
// decimal. Unparseable input degrades to zero; invoice amounts are heuristic
// and partial data beats a hard failure.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "-" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return amount.Round(2)
}

// Labeled amount patterns, tolerant of currency symbol, thousands separators
// and case. The (?:^|[^a-z]) guard keeps "Total" from matching inside
// "Subtotal".
var (
	subtotalPattern = regexp.MustCompile(`(?i)sub\s*total\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.\d{1,2})?)`)
	ivaPattern      = regexp.MustCompile(`(?i)\bi\.?v\.?a\.?\s*(?:\(\s*\d+(?:\.\d+)?\s*%\s*\))?\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.\d{1,2})?)`)
	totalPattern    = regexp.MustCompile(`(?i)(?:^|[^a-z])total\s*:?\s*\$?\s*([0-9][0-9,]*(?:\.\d{1,2})?)`)
)

// extractLabeledAmount returns the first amount following the label pattern.
func extractLabeledAmount(text string, pattern *regexp.Regexp) (decimal.Decimal, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	return parseAmount(m[1]), true
}
