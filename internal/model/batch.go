package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementBatch is the set of transactions posted to the bank on one
// business day. One batch becomes one appendix: a ledger entry plus a
// receipt document carrying the same appendix number.
type SettlementBatch struct {
	SettlementDate time.Time // always a business day
	TransferDate   time.Time // date of the earliest underlying transaction
	Appendix       int
	Transactions   []Transaction

	GrossSales       decimal.Decimal // sum of sale amounts
	Refunds          decimal.Decimal // sum of refund amounts, <= 0
	Fees             decimal.Decimal // provider fees withheld
	VoucherAmount    decimal.Decimal
	Registrations    int
	RegistrationFees decimal.Decimal
}

// Total returns the gross amount paid in, refunds included.
func (b SettlementBatch) Total() decimal.Decimal {
	return b.GrossSales.Add(b.Refunds)
}

// NetToBank returns the amount the provider actually transfers: the
// gross total minus the fees it withholds.
func (b SettlementBatch) NetToBank() decimal.Decimal {
	return b.Total().Sub(b.Fees)
}

// CountKind returns how many transactions of the given kind the batch holds.
func (b SettlementBatch) CountKind(k Kind) int {
	n := 0
	for _, t := range b.Transactions {
		if t.Kind == k {
			n++
		}
	}
	return n
}
