package services

import (
	"context"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/dto"
)

// PaymentWriterSvc defines write operations for payments.
type PaymentWriterSvc interface {
	// RegisterPayment applies part of a deposit to an invoice. Allocations
	// that would overdraw either side return an *apperrors.AllocationError.
	RegisterPayment(ctx context.Context, invoiceID string, req dto.RegisterPaymentRequest) (*dto.RegisterPaymentResponse, error)

	// RevertPayment deletes a payment and rolls its amount out of the invoice
	// and deposit aggregates.
	RevertPayment(ctx context.Context, paymentID string) (*dto.InvoiceResponse, error)
}

// PaymentSvcFacade combines all payment service interfaces.
type PaymentSvcFacade interface {
	PaymentWriterSvc
}
