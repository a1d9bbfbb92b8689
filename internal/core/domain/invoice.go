package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of an invoice has been covered by deposits.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// Invoice is a parsed invoice PDF. Filename is the unique natural key; a
// re-scan of an unchanged directory never creates a second row for the same
// file. PaidAmount, RemainingAmount and Status are derived from the payment
// ledger and are only ever mutated through payment registration/reversal.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	Filename        string          `json:"filename"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Date            *string         `json:"date"` // ISO YYYY-MM-DD, nil when no date could be parsed
	Agent           *string         `json:"agent"`
	Client          *string         `json:"client"`
	RFC             *string         `json:"rfc"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	IVA             decimal.Decimal `json:"iva"`
	Total           decimal.Decimal `json:"total"`
	RawText         string          `json:"-"` // retained for re-parsing and audit
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          PaymentStatus   `json:"paymentStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatusFor derives the payment status purely from paid vs total.
func StatusFor(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return StatusPending
	case paid.GreaterThanOrEqual(total):
		return StatusPaid
	default:
		return StatusPartial
	}
}

// ApplyPaidAmount sets the paid amount and recomputes the derived fields so
// they stay a pure function of the ledger.
func (inv *Invoice) ApplyPaidAmount(paid decimal.Decimal) {
	inv.PaidAmount = paid
	inv.RemainingAmount = inv.Total.Sub(paid)
	inv.Status = StatusFor(paid, inv.Total)
}
