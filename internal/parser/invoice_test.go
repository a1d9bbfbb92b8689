package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoiceText = `DIESEL INTERNACIONAL SA DE CV
Folio: A 30475
Fecha: 20-Nov-2025
Agente: 04 - JUAN DIOS
Datos del Cliente
Cliente: 0358 - DISTRIBUIDORA ACME SA DE CV
RFC: DAC150312AB9
Subtotal: $5,000.00
IVA (16%): $800.00
Total: $5,800.00
`

func TestParseInvoice(t *testing.T) {
	fields := ParseInvoice(sampleInvoiceText, "CFDI_FACTURA_CREDITO_4.0_A_30475.pdf")

	assert.Equal(t, "30475", fields.InvoiceNumber)

	require.NotNil(t, fields.Date)
	assert.Equal(t, "2025-11-20", *fields.Date)

	require.NotNil(t, fields.Agent)
	assert.Equal(t, "JUAN DIOS", *fields.Agent)

	require.NotNil(t, fields.Client)
	assert.Equal(t, "DISTRIBUIDORA ACME SA DE CV", *fields.Client)

	require.NotNil(t, fields.RFC)
	assert.Equal(t, "DAC150312AB9", *fields.RFC)

	assert.Equal(t, "5000", fields.Subtotal.String())
	assert.Equal(t, "800", fields.IVA.String())
	assert.Equal(t, "5800", fields.Total.String())
}

func TestParseInvoiceTotalDerivedWhenMissing(t *testing.T) {
	text := "Subtotal: $1,000.00\nIVA: $160.00\n"
	fields := ParseInvoice(text, "F_1234.pdf")
	assert.Equal(t, "1160", fields.Total.String())
}

func TestParseInvoiceMissingFieldsStayNil(t *testing.T) {
	fields := ParseInvoice("texto sin estructura reconocible", "nota.pdf")
	assert.Nil(t, fields.Date)
	assert.Nil(t, fields.Agent)
	assert.Nil(t, fields.Client)
	assert.Nil(t, fields.RFC)
	assert.True(t, fields.Subtotal.IsZero())
	assert.True(t, fields.Total.IsZero())
	// No folio in text or filename digits, fall back to the filename stem.
	assert.Equal(t, "nota", fields.InvoiceNumber)
}

func TestExtractFolio(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		filename string
		expected string
	}{
		{name: "labeled with letter prefix", text: "Folio: A 30475", filename: "x.pdf", expected: "30475"},
		{name: "labeled plain", text: "FOLIO 88123", filename: "x.pdf", expected: "88123"},
		{name: "filename boundary digits", text: "sin folio", filename: "CFDI_FACTURA_A_30476.pdf", expected: "30476"},
		{name: "filename any digit run", text: "sin folio", filename: "factura30477.pdf", expected: "30477"},
		{name: "stem fallback", text: "sin folio", filename: "recibo.pdf", expected: "recibo"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractFolio(tc.text, tc.filename))
		})
	}
}

func TestExtractAgentWithoutNumericCode(t *testing.T) {
	agent := extractAgent("Agente: MARIA LOPEZ\nresto")
	require.NotNil(t, agent)
	assert.Equal(t, "MARIA LOPEZ", *agent)
}

func TestExtractRFCPrefersClientSection(t *testing.T) {
	// The issuer RFC appears first; the client section RFC must win.
	text := "RFC: DIN990101XY1\nDatos del Cliente\nDISTRIBUIDORA ACME\nDAC150312AB9\nDomicilio"
	rfc := extractRFC(text)
	require.NotNil(t, rfc)
	assert.Equal(t, "DAC150312AB9", *rfc)
}

func TestLabeledTotalDoesNotMatchSubtotal(t *testing.T) {
	_, ok := extractLabeledAmount("Subtotal: $5,000.00", totalPattern)
	assert.False(t, ok)
}
