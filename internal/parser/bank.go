package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BankTransactionFields is one deposit row extracted from the statement text.
type BankTransactionFields struct {
	Date               string // ISO YYYY-MM-DD
	Agent              string
	Description        string
	Amount             decimal.Decimal
	Balance            decimal.Decimal
	Beneficiary        string
	TrackingKey        string
	AssociatedInvoices string // deduplicated, comma-joined invoice numbers
}

// The statement layout anchors every transaction on a DD/Mon/YYYY date.
var dateAnchorPattern = regexp.MustCompile(`\d{2}/[A-Z][a-z]{2}/\d{4}`)

// ParseBankStatement turns the extracted statement text into deposit rows.
// The text is normalized (reflow-split numbers rejoined, space runs
// collapsed), split into (date, content) chunks on the date anchor, and the
// chunks are folded left to right: each chunk's trailing text, after the
// running balance, is the counterparty name that labels the NEXT transaction.
// Chunks with fewer than two currency tokens cannot be disambiguated into
// amount and balance and are dropped. Only positive (deposit) amounts are
// kept.
func ParseBankStatement(text string) []BankTransactionFields {
	text = rejoinSplitNumbers(text)
	text = collapseSpaces(text)

	prefix, chunks := splitOnDateAnchors(text)

	acc := foldState{pendingAgent: flattenWhitespace(prefix)}
	for _, chunk := range chunks {
		acc = foldChunk(acc, chunk)
	}
	return acc.rows
}

// dateChunk is one (anchor date, following content) pair.
type dateChunk struct {
	date    string
	content string
}

// foldState carries the accumulator of the chunk fold: the counterparty name
// pending from the previous chunk's tail, and the rows emitted so far.
type foldState struct {
	pendingAgent string
	rows         []BankTransactionFields
}

// foldChunk consumes one chunk. The LAST currency token is the running
// balance, the second-to-last is the transaction amount; text before the
// amount is the description, text after the balance is carried forward as the
// next transaction's agent.
func foldChunk(acc foldState, chunk dateChunk) foldState {
	moneyLocs := currencyPattern.FindAllStringIndex(chunk.content, -1)
	if len(moneyLocs) < 2 {
		return acc
	}

	balanceLoc := moneyLocs[len(moneyLocs)-1]
	amountLoc := moneyLocs[len(moneyLocs)-2]

	amount := parseAmount(chunk.content[amountLoc[0]:amountLoc[1]])
	balance := parseAmount(chunk.content[balanceLoc[0]:balanceLoc[1]])

	description := flattenWhitespace(chunk.content[:amountLoc[0]])
	nextAgent := flattenWhitespace(chunk.content[balanceLoc[1]:])

	if amount.IsPositive() {
		acc.rows = append(acc.rows, BankTransactionFields{
			Date:               normalizeAnchorDate(chunk.date),
			Agent:              acc.pendingAgent,
			Description:        description,
			Amount:             amount,
			Balance:            balance,
			Beneficiary:        extractBeneficiary(description),
			TrackingKey:        extractTrackingKey(description),
			AssociatedInvoices: extractInvoiceNumbers(description),
		})
	}

	acc.pendingAgent = nextAgent
	return acc
}

// splitOnDateAnchors splits text on the date-anchor regex, keeping the
// anchors: it returns the text preceding the first anchor and the
// interleaved (date, content) pairs.
func splitOnDateAnchors(text string) (string, []dateChunk) {
	locs := dateAnchorPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, nil
	}

	prefix := text[:locs[0][0]]
	chunks := make([]dateChunk, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunks = append(chunks, dateChunk{
			date:    text[loc[0]:loc[1]],
			content: text[loc[1]:end],
		})
	}
	return prefix, chunks
}

var (
	splitNumberPattern   = regexp.MustCompile(`([$\d,.-])[\r\n]+[ \t]*([\d,.-])`)
	trailingYearSuffix   = regexp.MustCompile(`/\d{4}$`)
	spaceRunPattern      = regexp.MustCompile(` +`)
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// rejoinSplitNumbers undoes the PDF reflow that breaks a currency token
// across a line boundary, without gluing a date's year digits onto the next
// line's number. Applied repeatedly because a token can be split more than
// once.
func rejoinSplitNumbers(text string) string {
	for {
		joined := replaceSplitNumbersOnce(text)
		if joined == text {
			return joined
		}
		text = joined
	}
}

func replaceSplitNumbersOnce(text string) string {
	var b strings.Builder
	last := 0
	for _, m := range splitNumberPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] < last {
			continue
		}
		// m[2]:m[3] is the fragment tail, m[4]:m[5] the continuation head.
		if trailingYearSuffix.MatchString(text[:m[3]]) {
			continue
		}
		b.WriteString(text[last:m[3]])
		last = m[4]
	}
	b.WriteString(text[last:])
	return b.String()
}

func collapseSpaces(s string) string {
	return spaceRunPattern.ReplaceAllString(s, " ")
}

// flattenWhitespace trims s and replaces every whitespace run, newlines
// included, with a single space. Descriptions that span PDF rows must be one
// line before the sub-field patterns run over them.
func flattenWhitespace(s string) string {
	return whitespaceRunPattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Sub-field extraction from the description block.
var (
	beneficiaryClientPattern = regexp.MustCompile(`DEL CLIENTE (.*?) (?:DE|CON RFC)`)
	beneficiaryBenefPattern  = regexp.MustCompile(`BENEF:(.*?) ?\(`)
	trackingKeyPattern       = regexp.MustCompile(`CVE RAST:?\s*(\S+)`)
	invoiceDashPattern       = regexp.MustCompile(`[Ff]-(\d+)`)
	invoiceTokenPattern      = regexp.MustCompile(` f ((?:\d+\s*)+)`)
)

// extractBeneficiary pulls the counterparty out of a SPEI description:
// "DEL CLIENTE <name> DE"/"CON RFC", or the "BENEF:<name> (" variant.
func extractBeneficiary(description string) string {
	if m := beneficiaryClientPattern.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := beneficiaryBenefPattern.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractTrackingKey pulls the SPEI tracking key after the "CVE RAST" marker.
func extractTrackingKey(description string) string {
	if m := trackingKeyPattern.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractInvoiceNumbers collects invoice folio references: digit runs behind
// an F-/f- prefix, plus digit runs longer than 3 behind a standalone "f"
// token. Deduplicated in first-seen order, comma-joined.
func extractInvoiceNumbers(description string) string {
	var numbers []string
	for _, m := range invoiceDashPattern.FindAllStringSubmatch(description, -1) {
		numbers = append(numbers, m[1])
	}
	if m := invoiceTokenPattern.FindStringSubmatch(description); m != nil {
		for _, tok := range strings.Fields(m[1]) {
			if len(tok) > 3 {
				numbers = append(numbers, tok)
			}
		}
	}

	seen := make(map[string]struct{}, len(numbers))
	unique := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	return strings.Join(unique, ", ")
}
