package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month abbreviation lookup. Spanish abbreviations first: the invoice and
// statement layouts this parser is tuned to are Mexican, so Ene/Abr/Ago/Dic
// take priority, with the English set accepted as a fallback for the
// abbreviations that differ.
var monthAbbrevs = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,

	"jan": time.January,
	"apr": time.April,
	"aug": time.August,
	"dec": time.December,
}

// Date shapes in priority order.
var (
	// DD-Mon-YYYY or DD/Mon/YYYY (e.g. 02-Ene-2025, 20/Nov/2025)
	dateDayMonYear = regexp.MustCompile(`\b(\d{1,2})[-/]([A-Za-z]{3})[-/](\d{4})\b`)
	// DD-MM-YYYY or DD/MM/YYYY
	dateDayMonthYear = regexp.MustCompile(`\b(\d{1,2})[-/](\d{1,2})[-/](\d{4})\b`)
	// YYYY-MM-DD or YYYY/MM/DD
	dateYearMonthDay = regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`)
)

// monthFromAbbrev resolves a 3-letter month abbreviation, Spanish or English.
func monthFromAbbrev(abbrev string) (time.Month, bool) {
	m, ok := monthAbbrevs[strings.ToLower(abbrev)]
	return m, ok
}

// isoDate formats a calendar date as YYYY-MM-DD after a range sanity check.
func isoDate(year int, month time.Month, day int) (string, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// findDate scans text for the first date in any of the supported shapes,
// highest-priority shape first, and returns it normalized to ISO form.
func findDate(text string) (string, bool) {
	if m := dateDayMonYear.FindStringSubmatch(text); m != nil {
		if month, ok := monthFromAbbrev(m[2]); ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if iso, ok := isoDate(year, month, day); ok {
				return iso, true
			}
		}
	}
	if m := dateDayMonthYear.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if iso, ok := isoDate(year, time.Month(month), day); ok {
			return iso, true
		}
	}
	if m := dateYearMonthDay.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if iso, ok := isoDate(year, time.Month(month), day); ok {
			return iso, true
		}
	}
	return "", false
}

// normalizeAnchorDate converts a DD/Mon/YYYY statement anchor (already
// validated by the anchor regex) to ISO form. An unknown month abbreviation
// returns the token unchanged so the raw value is still visible downstream.
func normalizeAnchorDate(token string) string {
	parts := strings.Split(token, "/")
	if len(parts) != 3 {
		return token
	}
	month, ok := monthFromAbbrev(parts[1])
	if !ok {
		return token
	}
	day, _ := strconv.Atoi(parts[0])
	year, _ := strconv.Atoi(parts[2])
	if iso, ok := isoDate(year, month, day); ok {
		return iso
	}
	return token
}
