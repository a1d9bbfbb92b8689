package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrExtraction indicates that text could not be extracted from a PDF file.
// During a directory scan this is fatal for the file, not for the batch.
var ErrExtraction = errors.New("pdf text extraction failed")

// AllocationReason identifies which payment precondition was violated.
type AllocationReason string

const (
	// ReasonExceedsInvoiceTotal: paid_amount + amount would exceed the invoice total.
	ReasonExceedsInvoiceTotal AllocationReason = "EXCEEDS_INVOICE_TOTAL"
	// ReasonExceedsTransactionRemaining: amount exceeds the deposit's unallocated remainder.
	ReasonExceedsTransactionRemaining AllocationReason = "EXCEEDS_TRANSACTION_REMAINING"
	// ReasonNonPositiveAmount: the payment amount is zero or negative.
	ReasonNonPositiveAmount AllocationReason = "NON_POSITIVE_AMOUNT"
)

// AllocationError is a payment precondition violation. It carries the numeric
// context (the limit, what is already applied against it, and the attempted
// amount) so callers can explain the rejection to a user.
type AllocationError struct {
	Reason    AllocationReason `json:"reason"`
	Limit     decimal.Decimal  `json:"limit"`
	Applied   decimal.Decimal  `json:"applied"`
	Attempted decimal.Decimal  `json:"attempted"`
}

func (e *AllocationError) Error() string {
	switch e.Reason {
	case ReasonExceedsInvoiceTotal:
		return fmt.Sprintf("payment of %s would exceed invoice total %s (already paid %s)",
			e.Attempted, e.Limit, e.Applied)
	case ReasonExceedsTransactionRemaining:
		return fmt.Sprintf("payment of %s exceeds transaction remaining amount (deposit %s, already allocated %s)",
			e.Attempted, e.Limit, e.Applied)
	case ReasonNonPositiveAmount:
		return fmt.Sprintf("payment amount must be greater than 0, got %s", e.Attempted)
	}
	return fmt.Sprintf("payment of %s rejected: %s", e.Attempted, e.Reason)
}

// Remaining returns the room left under the violated limit.
func (e *AllocationError) Remaining() decimal.Decimal {
	return e.Limit.Sub(e.Applied)
}

// Unwrap makes AllocationError match errors.Is(err, ErrValidation).
func (e *AllocationError) Unwrap() error {
	return ErrValidation
}
