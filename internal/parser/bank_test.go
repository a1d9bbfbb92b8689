package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatementText = "DISTRIBUIDORA ACME SA DE CV " +
	"20/Nov/2025 SPEI RECIBIDO DEL CLIENTE COMERCIAL ACME SA CON RFC DAC150312AB9 CVE RAST: 2025112012345 f 30475 $11,248.52 $50,000.00 TRANSPORTES DEL NORTE SA " +
	"21/Nov/2025 PAGO CUENTA DE TERCEROS BENEF:TRANSPORTES DEL NORTE SA (F-30480) $2,0\n00.00 $52,000.00 " +
	"22/Nov/2025 COMISION SERVICIO $-58.00 $51,942.00 " +
	"23/Nov/2025 SALDO FINAL DEL PERIODO $51,942.00"

func TestParseBankStatement(t *testing.T) {
	rows := ParseBankStatement(sampleStatementText)

	// The commission is negative and the closing-balance line has a single
	// currency token; only the two deposits survive.
	require.Len(t, rows, 2)

	spei := rows[0]
	assert.Equal(t, "2025-11-20", spei.Date)
	assert.Equal(t, "DISTRIBUIDORA ACME SA DE CV", spei.Agent)
	assert.Equal(t, "11248.52", spei.Amount.String())
	assert.Equal(t, "50000", spei.Balance.String())
	assert.Equal(t, "COMERCIAL ACME SA", spei.Beneficiary)
	assert.Equal(t, "2025112012345", spei.TrackingKey)
	assert.Equal(t, "30475", spei.AssociatedInvoices)
	assert.Contains(t, spei.Description, "SPEI RECIBIDO")

	transfer := rows[1]
	assert.Equal(t, "2025-11-21", transfer.Date)
	// The text after the previous row's balance labels this row.
	assert.Equal(t, "TRANSPORTES DEL NORTE SA", transfer.Agent)
	assert.Equal(t, "2000", transfer.Amount.String())
	assert.Equal(t, "52000", transfer.Balance.String())
	assert.Equal(t, "TRANSPORTES DEL NORTE SA", transfer.Beneficiary)
	assert.Equal(t, "30480", transfer.AssociatedInvoices)
}

func TestParseBankStatementEmptyInput(t *testing.T) {
	assert.Empty(t, ParseBankStatement(""))
	assert.Empty(t, ParseBankStatement("texto sin movimientos"))
}

func TestParseBankStatementAgentCarriesOverDroppedRow(t *testing.T) {
	// The middle chunk has a single currency token, is dropped, and must not
	// disturb the agent pending from the first chunk's tail.
	text := "ENCABEZADO " +
		"01/Ene/2025 ABONO $100.00 $1,100.00 CLIENTE UNO " +
		"02/Ene/2025 LINEA INFORMATIVA $1,100.00 " +
		"03/Ene/2025 ABONO $200.00 $1,300.00"
	rows := ParseBankStatement(text)

	require.Len(t, rows, 2)
	assert.Equal(t, "ENCABEZADO", rows[0].Agent)
	assert.Equal(t, "CLIENTE UNO", rows[1].Agent)
	assert.Equal(t, "2025-01-03", rows[1].Date)
}

func TestParseBankStatementNegativeAdvancesAgent(t *testing.T) {
	// A negative row is not kept but its tail still relabels the next row.
	text := "01/Ene/2025 CARGO $-50.00 $950.00 CLIENTE DOS " +
		"02/Ene/2025 ABONO $500.00 $1,450.00"
	rows := ParseBankStatement(text)

	require.Len(t, rows, 1)
	assert.Equal(t, "CLIENTE DOS", rows[0].Agent)
	assert.Equal(t, "500", rows[0].Amount.String())
}

func TestParseBankStatementDescriptionSpansRows(t *testing.T) {
	// Extraction joins PDF rows with newlines, so a long SPEI description
	// arrives broken across lines. It must be flattened to one line before
	// the sub-field patterns run, or the beneficiary is lost.
	text := "ENCABEZADO " +
		"01/Ene/2025 SPEI RECIBIDO DEL CLIENTE COMERCIAL\nACME SA CON RFC DAC150312AB9 CVE RAST: 2025010198765 $100.00 $200.00"
	rows := ParseBankStatement(text)

	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Description, "\n")
	assert.Equal(t, "COMERCIAL ACME SA", rows[0].Beneficiary)
	assert.Equal(t, "2025010198765", rows[0].TrackingKey)
}

func TestRejoinSplitNumbers(t *testing.T) {
	assert.Equal(t, "total $1,234.56 fin", rejoinSplitNumbers("total $1,2\n34.56 fin"))
	// A date's year must not be glued to the number on the next line.
	assert.Equal(t, "al 20/Nov/2025\n1500 unidades", rejoinSplitNumbers("al 20/Nov/2025\n1500 unidades"))
}

func TestExtractInvoiceNumbers(t *testing.T) {
	testCases := []struct {
		name        string
		description string
		expected    string
	}{
		{name: "dash prefixed", description: "PAGO F-30480 GRACIAS", expected: "30480"},
		{name: "loose token list", description: "PAGO f 30475 30481 REF", expected: "30475, 30481"},
		{name: "short tokens filtered", description: "PAGO f 123 REF", expected: ""},
		{name: "deduplicated", description: "F-30475 f 30475", expected: "30475"},
		{name: "none", description: "SIN REFERENCIA", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractInvoiceNumbers(tc.description))
		})
	}
}
