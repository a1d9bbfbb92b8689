package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
)

func TestAssociatedInvoicesFieldUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []domain.InvoiceRef
		wantErr  bool
	}{
		{
			name:  "comma separated string",
			input: `"30475, 30481"`,
			expected: []domain.InvoiceRef{
				{Invoice: "30475", Amount: decimal.Zero},
				{Invoice: "30481", Amount: decimal.Zero},
			},
		},
		{
			name:  "structured array",
			input: `[{"invoice": "30475", "amount": "5800"}, {"invoice": "30481", "amount": "1200.50"}]`,
			expected: []domain.InvoiceRef{
				{Invoice: "30475", Amount: decimal.NewFromInt(5800)},
				{Invoice: "30481", Amount: decimal.RequireFromString("1200.50")},
			},
		},
		{
			name:     "empty string clears the association",
			input:    `""`,
			expected: nil,
		},
		{
			name:    "entry without invoice number",
			input:   `[{"invoice": "", "amount": "100"}]`,
			wantErr: true,
		},
		{
			name:    "negative assigned amount",
			input:   `[{"invoice": "30475", "amount": "-100"}]`,
			wantErr: true,
		},
		{
			name:    "neither string nor array",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var field dto.AssociatedInvoicesField
			err := json.Unmarshal([]byte(tt.input), &field)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, field.Refs, len(tt.expected))
			for i, ref := range tt.expected {
				assert.Equal(t, ref.Invoice, field.Refs[i].Invoice)
				assert.True(t, ref.Amount.Equal(field.Refs[i].Amount), "amount mismatch for %s", ref.Invoice)
			}
		})
	}
}

func TestToBankTransactionResponseKeepsReadable(t *testing.T) {
	txn := &domain.BankTransaction{
		TransactionID:      "txn-1",
		Date:               "2024-03-08",
		Amount:             decimal.NewFromInt(20000),
		AllocatedAmount:    decimal.NewFromInt(5000),
		AssociatedInvoices: "{not valid json",
	}

	resp := dto.ToBankTransactionResponse(txn)

	assert.Empty(t, resp.AssociatedInvoices)
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(15000)))
}
