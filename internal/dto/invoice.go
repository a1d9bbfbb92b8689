package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string               `json:"invoiceID"`
	Filename        string               `json:"filename"`
	InvoiceNumber   string               `json:"invoiceNumber"`
	Date            *string              `json:"date"`
	Agent           *string              `json:"agent"`
	Client          *string              `json:"client"`
	RFC             *string              `json:"rfc"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	IVA             decimal.Decimal      `json:"iva"`
	Total           decimal.Decimal      `json:"total"`
	PaidAmount      decimal.Decimal      `json:"paidAmount"`
	RemainingAmount decimal.Decimal      `json:"remainingAmount"`
	Status          domain.PaymentStatus `json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// ListInvoicesParams carries the optional query filters for invoice listing.
type ListInvoicesParams struct {
	Status *domain.PaymentStatus `form:"status" binding:"omitempty,oneof=pending partial paid"`
	Agent  *string               `form:"agent"`
	Client *string               `form:"client"`
}

// ListInvoicesResponse wraps the invoice list.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Total    int               `json:"total"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		Filename:        inv.Filename,
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            inv.Date,
		Agent:           inv.Agent,
		Client:          inv.Client,
		RFC:             inv.RFC,
		Subtotal:        inv.Subtotal,
		IVA:             inv.IVA,
		Total:           inv.Total,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount,
		Status:          inv.Status,
		CreatedAt:       inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to []InvoiceResponse.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(&inv)
	}
	return responses
}
