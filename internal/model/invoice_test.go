package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceLineTotal(t *testing.T) {
	line := InvoiceLine{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("12.50"),
	}

	assert.True(t, line.LineTotal().Equal(decimal.RequireFromString("37.50")))
}

func TestInvoiceComputeTotal(t *testing.T) {
	invoice := Invoice{
		Lines: []InvoiceLine{
			{Quantity: 1, UnitPrice: decimal.RequireFromString("850.00")},
			{Quantity: 2, UnitPrice: decimal.RequireFromString("35.00")},
		},
	}

	assert.True(t, invoice.ComputeTotal().Equal(decimal.RequireFromString("920.00")))
}

func TestInvoiceIsPayable(t *testing.T) {
	cases := []struct {
		status  InvoiceStatus
		payable bool
	}{
		{InvoiceStatusDraft, false},
		{InvoiceStatusIssued, true},
		{InvoiceStatusOverdue, true},
		{InvoiceStatusPaid, false},
		{InvoiceStatusVoid, false},
	}

	for _, tc := range cases {
		invoice := Invoice{Status: tc.status}
		assert.Equal(t, tc.payable, invoice.IsPayable(), "status %s", tc.status)
	}
}
