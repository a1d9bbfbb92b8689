package domain_test

import (
	"testing"

	"github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name  string
		paid  string
		total string
		want  domain.PaymentStatus
	}{
		{"nothing paid", "0", "5800.00", domain.StatusPending},
		{"partially paid", "1000.00", "5800.00", domain.StatusPartial},
		{"fully paid", "5800.00", "5800.00", domain.StatusPaid},
		{"zero total", "0", "0", domain.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.StatusFor(d(tt.paid), d(tt.total))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyPaidAmount(t *testing.T) {
	inv := domain.Invoice{Total: d("11248.52")}

	inv.ApplyPaidAmount(d("5000.00"))
	assert.True(t, inv.PaidAmount.Equal(d("5000.00")))
	assert.True(t, inv.RemainingAmount.Equal(d("6248.52")))
	assert.Equal(t, domain.StatusPartial, inv.Status)

	inv.ApplyPaidAmount(d("11248.52"))
	assert.True(t, inv.RemainingAmount.IsZero())
	assert.Equal(t, domain.StatusPaid, inv.Status)

	inv.ApplyPaidAmount(decimal.Zero)
	assert.True(t, inv.RemainingAmount.Equal(inv.Total))
	assert.Equal(t, domain.StatusPending, inv.Status)
}
