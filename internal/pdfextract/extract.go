// Package pdfextract pulls plain text out of PDF documents so the parsers
// can work on text instead of the PDF object model.
package pdfextract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
)

// Extractor reads PDF files from disk and returns their text content.
// It satisfies the TextExtractor port used by the scan services.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the text of every page in the document, pages joined
// by a newline. Row-based extraction is tried first because it preserves the
// line structure the parsers key on; whole-document plain text is the
// fallback for PDFs whose content streams the row walker cannot handle.
// Failures, including panics inside the PDF library on malformed files, are
// reported wrapping apperrors.ErrExtraction so callers can classify them.
func (e *Extractor) ExtractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: reading %s: panic: %v", apperrors.ErrExtraction, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", apperrors.ErrExtraction, path, err)
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return "", fmt.Errorf("%w: %s has no pages", apperrors.ErrExtraction, path)
	}

	pages := extractByRow(reader)
	if strings.TrimSpace(strings.Join(pages, "")) == "" {
		plain, plainErr := extractPlainText(reader)
		if plainErr != nil || strings.TrimSpace(plain) == "" {
			return "", fmt.Errorf("%w: no text content in %s", apperrors.ErrExtraction, path)
		}
		pages = []string{plain}
	}

	return strings.Join(pages, "\n"), nil
}

// extractByRow walks each page row by row, top to bottom, joining the words
// of a row with single spaces.
func extractByRow(reader *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return pages
}

func extractPlainText(reader *pdf.Reader) (string, error) {
	r, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
