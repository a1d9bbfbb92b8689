package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment applies a slice of one bank deposit to one invoice. It is the
// single source of truth for the deposit/invoice reconciliation: one deposit
// may fund several invoices and one invoice may be funded by several
// deposits. Deleting a Payment never deletes either parent, it only
// recomputes their aggregates.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         *string         `json:"notes"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

// PaymentWithTransaction is a payment joined with display fields of the
// deposit that funded it, for the invoice payment history view.
type PaymentWithTransaction struct {
	Payment
	TransactionDate        string  `json:"transactionDate"`
	TransactionDescription string  `json:"transactionDescription"`
	TrackingKey            *string `json:"trackingKey"`
}

// PaymentWithInvoice is a payment joined with display fields of the invoice
// it funded, for the deposit allocation view.
type PaymentWithInvoice struct {
	Payment
	InvoiceNumber string          `json:"invoiceNumber"`
	Client        *string         `json:"client"`
	InvoiceTotal  decimal.Decimal `json:"invoiceTotal"`
}
