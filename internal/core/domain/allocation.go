package domain

import (
	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ValidateAllocation checks the payment preconditions: the amount must be
// positive, must fit inside the invoice's remaining room, and must fit inside
// the deposit's unallocated remainder. It is pure so the rules can be tested
// without a store; the repository re-runs it inside the registration
// transaction under row locks.
func ValidateAllocation(inv *Invoice, txn *BankTransaction, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &apperrors.AllocationError{
			Reason:    apperrors.ReasonNonPositiveAmount,
			Attempted: amount,
		}
	}
	if inv.PaidAmount.Add(amount).GreaterThan(inv.Total) {
		return &apperrors.AllocationError{
			Reason:    apperrors.ReasonExceedsInvoiceTotal,
			Limit:     inv.Total,
			Applied:   inv.PaidAmount,
			Attempted: amount,
		}
	}
	if amount.GreaterThan(txn.RemainingAmount()) {
		return &apperrors.AllocationError{
			Reason:    apperrors.ReasonExceedsTransactionRemaining,
			Limit:     txn.Amount.Abs(),
			Applied:   txn.AllocatedAmount,
			Attempted: amount,
		}
	}
	return nil
}
