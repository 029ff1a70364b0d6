package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a MobilePay export row.
type Kind string

const (
	KindSale   Kind = "sale"
	KindRefund Kind = "refund"
	KindFee    Kind = "fee"
	KindPayout Kind = "payout"
)

// Transaction is one classified row from the MyShop export.
// Amounts are signed: sales positive, refunds negative. Fee is the
// provider fee withheld for the row, always non-negative.
type Transaction struct {
	Kind         Kind
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Timestamp    time.Time
	CustomerName string
	Comment      string
	Line         int // 1-based line in the source file

	// Registration fields, set by the registration detector.
	IsRegistration  bool
	VoucherAmount   decimal.Decimal // Amount minus registration fee for registrations
	RegistrationFee decimal.Decimal // zero unless IsRegistration
}

// Date returns the transaction's calendar date with the time of day dropped.
func (t Transaction) Date() time.Time {
	return time.Date(t.Timestamp.Year(), t.Timestamp.Month(), t.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
}
