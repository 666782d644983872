package domain_test

import (
	"testing"
	"time"

	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveInvoiceStatus(t *testing.T) {
	total := decimal.NewFromInt(5000)

	testCases := []struct {
		name     string
		paid     decimal.Decimal
		expected domain.InvoiceStatus
	}{
		{"nothing paid", decimal.Zero, domain.InvoicePending},
		{"negative paid treated as pending", decimal.NewFromInt(-100), domain.InvoicePending},
		{"partially paid", decimal.NewFromInt(2000), domain.InvoicePartiallyPaid},
		{"one unit short", decimal.NewFromInt(4999), domain.InvoicePartiallyPaid},
		{"paid exactly", decimal.NewFromInt(5000), domain.InvoicePaid},
		{"paid above total", decimal.NewFromInt(5001), domain.InvoicePaid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.DeriveInvoiceStatus(total, tc.paid))
		})
	}
}

func TestDeriveInvoiceStatus_ZeroTotal(t *testing.T) {
	// A zero-total invoice with nothing paid is pending, not paid.
	assert.Equal(t, domain.InvoicePending, domain.DeriveInvoiceStatus(decimal.Zero, decimal.Zero))
}

func TestInvoiceIsOverdue(t *testing.T) {
	now := time.Date(2026, time.May, 15, 12, 0, 0, 0, time.UTC)
	pastDue := now.AddDate(0, 0, -5)
	futureDue := now.AddDate(0, 0, 5)

	testCases := []struct {
		name     string
		status   domain.InvoiceStatus
		dueDate  time.Time
		expected bool
	}{
		{"pending past due", domain.InvoicePending, pastDue, true},
		{"partially paid past due", domain.InvoicePartiallyPaid, pastDue, true},
		{"pending not yet due", domain.InvoicePending, futureDue, false},
		{"paid past due", domain.InvoicePaid, pastDue, false},
		{"cancelled past due", domain.InvoiceCancelled, pastDue, false},
		{"due exactly now", domain.InvoicePending, now, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			invoice := domain.Invoice{Status: tc.status, DueDate: tc.dueDate}
			assert.Equal(t, tc.expected, invoice.IsOverdue(now))
		})
	}
}
