package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDKK(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"1234.5", "1234,50"},
		{"-40", "-40,00"},
		{"0.255", "0,26"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		assert.Equal(t, tt.want, FormatDKK(d), "FormatDKK(%s)", tt.in)
	}
}

func TestFormatDKKGrouped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"999", "999,00"},
		{"1000", "1.000,00"},
		{"1234567.89", "1.234.567,89"},
		{"-1234.56", "-1.234,56"},
	}
	for _, tt := range tests {
		d := decimal.RequireFromString(tt.in)
		assert.Equal(t, tt.want, FormatDKKGrouped(d), "FormatDKKGrouped(%s)", tt.in)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2019, time.September, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02-09-2019", FormatDate(d))
}

func TestBatchTotals(t *testing.T) {
	b := SettlementBatch{
		GrossSales: decimal.RequireFromString("1200"),
		Refunds:    decimal.RequireFromString("-40"),
		Fees:       decimal.RequireFromString("5.40"),
		Transactions: []Transaction{
			{Kind: KindSale},
			{Kind: KindSale},
			{Kind: KindRefund},
			{Kind: KindFee},
		},
	}

	assert.Equal(t, "1160.00", b.Total().StringFixed(2))
	assert.Equal(t, "1154.60", b.NetToBank().StringFixed(2))
	assert.Equal(t, 2, b.CountKind(KindSale))
	assert.Equal(t, 1, b.CountKind(KindRefund))
	assert.Equal(t, 0, b.CountKind(KindPayout))
}
