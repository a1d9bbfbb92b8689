package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// RegisterPaymentRequest defines the data needed to apply part of a deposit
// to an invoice.
type RegisterPaymentRequest struct {
	TransactionID string          `json:"transactionID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Notes         *string         `json:"notes"`
}

// RegisterPaymentResponse returns the new payment and the invoice with its
// recalculated paid, remaining and status fields.
type RegisterPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         *string         `json:"notes"`
	AppliedAt     time.Time       `json:"appliedAt"`
}

// InvoicePaymentResponse is a payment joined with its source deposit, for
// the per-invoice payment history.
type InvoicePaymentResponse struct {
	PaymentResponse
	TransactionDate        string  `json:"transactionDate"`
	TransactionDescription string  `json:"transactionDescription"`
	TrackingKey            *string `json:"trackingKey"`
}

// TransactionPaymentResponse is a payment joined with its target invoice,
// for the per-deposit allocation breakdown.
type TransactionPaymentResponse struct {
	PaymentResponse
	InvoiceNumber string          `json:"invoiceNumber"`
	Client        *string         `json:"client"`
	InvoiceTotal  decimal.Decimal `json:"invoiceTotal"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		InvoiceID:     p.InvoiceID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Notes:         p.Notes,
		AppliedAt:     p.AppliedAt,
	}
}

// ToInvoicePaymentResponses converts joined payment rows for an invoice.
func ToInvoicePaymentResponses(payments []domain.PaymentWithTransaction) []InvoicePaymentResponse {
	responses := make([]InvoicePaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = InvoicePaymentResponse{
			PaymentResponse:        ToPaymentResponse(&p.Payment),
			TransactionDate:        p.TransactionDate,
			TransactionDescription: p.TransactionDescription,
			TrackingKey:            p.TrackingKey,
		}
	}
	return responses
}

// ToTransactionPaymentResponses converts joined payment rows for a deposit.
func ToTransactionPaymentResponses(payments []domain.PaymentWithInvoice) []TransactionPaymentResponse {
	responses := make([]TransactionPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = TransactionPaymentResponse{
			PaymentResponse: ToPaymentResponse(&p.Payment),
			InvoiceNumber:   p.InvoiceNumber,
			Client:          p.Client,
			InvoiceTotal:    p.InvoiceTotal,
		}
	}
	return responses
}
