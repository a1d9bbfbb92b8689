package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is a deposit line parsed from the bank statement PDF.
// Only positive (deposit) amounts are ever persisted; debit lines are
// discarded at parse time. AllocatedAmount is derived from the payment
// ledger. AssociatedInvoices is the legacy free-form display field,
// superseded by the Payment relation but kept for backward compatibility.
type BankTransaction struct {
	TransactionID      string           `json:"transactionID"`
	Date               string           `json:"date"` // ISO YYYY-MM-DD
	Agent              *string          `json:"agent"`
	Description        string           `json:"description"`
	Amount             decimal.Decimal  `json:"amount"`
	Balance            *decimal.Decimal `json:"balance"`
	Beneficiary        *string          `json:"beneficiary"`
	TrackingKey        *string          `json:"trackingKey"`
	AllocatedAmount    decimal.Decimal  `json:"allocatedAmount"`
	AssociatedInvoices string           `json:"associatedInvoices"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// RemainingAmount is the deposit room not yet applied to any invoice.
func (t *BankTransaction) RemainingAmount() decimal.Decimal {
	return t.Amount.Abs().Sub(t.AllocatedAmount)
}
