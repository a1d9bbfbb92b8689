package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
)

// BankTransactionResponse defines the data returned for a bank deposit.
type BankTransactionResponse struct {
	TransactionID      string              `json:"transactionID"`
	Date               string              `json:"date"`
	Agent              *string             `json:"agent"`
	Description        string              `json:"description"`
	Amount             decimal.Decimal     `json:"amount"`
	Balance            *decimal.Decimal    `json:"balance"`
	Beneficiary        *string             `json:"beneficiary"`
	TrackingKey        *string             `json:"trackingKey"`
	AllocatedAmount    decimal.Decimal     `json:"allocatedAmount"`
	RemainingAmount    decimal.Decimal     `json:"remainingAmount"`
	AssociatedInvoices []domain.InvoiceRef `json:"associatedInvoices"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// ListTransactionsParams carries the optional query filters for the
// transaction listing.
type ListTransactionsParams struct {
	Unallocated bool    `form:"unallocated"`
	Agent       *string `form:"agent"`
}

// ListTransactionsResponse wraps the transaction list.
type ListTransactionsResponse struct {
	Transactions []BankTransactionResponse `json:"transactions"`
	Total        int                       `json:"total"`
}

// AssociatedInvoicesField accepts the two wire shapes clients send for the
// invoice association: a plain comma-separated string of invoice numbers, or
// a JSON array of {invoice, amount} objects. Either form decodes to refs.
type AssociatedInvoicesField struct {
	Refs []domain.InvoiceRef
}

func (f *AssociatedInvoicesField) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		refs, err := domain.ParseAssociatedInvoices(asString)
		if err != nil {
			return fmt.Errorf("invalid associated invoices: %w", err)
		}
		f.Refs = refs
		return nil
	}

	var asRefs []domain.InvoiceRef
	if err := json.Unmarshal(data, &asRefs); err != nil {
		return fmt.Errorf("associated invoices must be a string or an array of {invoice, amount} objects")
	}
	for _, ref := range asRefs {
		if strings.TrimSpace(ref.Invoice) == "" {
			return fmt.Errorf("associated invoice entry has an empty invoice number")
		}
		if ref.Amount.IsNegative() {
			return fmt.Errorf("associated invoice %s has a negative amount", ref.Invoice)
		}
	}
	f.Refs = asRefs
	return nil
}

func (f AssociatedInvoicesField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Refs)
}

// UpdateTransactionRequest defines the editable fields of a bank deposit.
// Pointers distinguish fields not provided from zero-value updates.
type UpdateTransactionRequest struct {
	Agent              *string                  `json:"agent"`
	AssociatedInvoices *AssociatedInvoicesField `json:"associatedInvoices"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
// The legacy association string is decoded to structured refs; a string that
// does not decode is surfaced as an empty list rather than failing the read.
func ToBankTransactionResponse(txn *domain.BankTransaction) BankTransactionResponse {
	refs, err := domain.ParseAssociatedInvoices(txn.AssociatedInvoices)
	if err != nil {
		refs = []domain.InvoiceRef{}
	}
	return BankTransactionResponse{
		TransactionID:      txn.TransactionID,
		Date:               txn.Date,
		Agent:              txn.Agent,
		Description:        txn.Description,
		Amount:             txn.Amount,
		Balance:            txn.Balance,
		Beneficiary:        txn.Beneficiary,
		TrackingKey:        txn.TrackingKey,
		AllocatedAmount:    txn.AllocatedAmount,
		RemainingAmount:    txn.RemainingAmount(),
		AssociatedInvoices: refs,
		CreatedAt:          txn.CreatedAt,
	}
}

// ToBankTransactionResponses converts a slice of domain.BankTransaction.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	responses := make([]BankTransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToBankTransactionResponse(&txn)
	}
	return responses
}
