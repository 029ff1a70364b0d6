// Package batch groups classified transactions into settlement batches
// and assigns appendix numbers.
package batch

import (
	"fmt"
	"sort"
	"time"

	"github.com/f-klubben/mpdinero/internal/calendar"
	"github.com/f-klubben/mpdinero/internal/model"
)

// Result is the outcome of one aggregation pass.
type Result struct {
	Batches      []model.SettlementBatch // settlement-date order
	NextAppendix int                     // seed for the next run
}

// Aggregate buckets transactions by settlement date and numbers the
// resulting batches contiguously from startAppendix.
//
// The settlement date of a transaction is the first business day after
// its transaction date. Grouping is keyed on that date, not on input
// position: a late row whose settlement date was already seen merges
// into the existing batch. Appendix numbers are assigned only after the
// full pass, in settlement-date order, so the range stays contiguous.
// Payouts are the provider moving money, not member transactions, and
// never join a batch.
func Aggregate(txns []model.Transaction, startAppendix int, cal calendar.BusinessDayChecker) Result {
	byDate := make(map[time.Time]*model.SettlementBatch)
	for _, t := range txns {
		if t.Kind == model.KindPayout {
			continue
		}
		settles := calendar.NextBusinessDay(cal, t.Date())

		b, ok := byDate[settles]
		if !ok {
			b = &model.SettlementBatch{
				SettlementDate: settles,
				TransferDate:   t.Date(),
			}
			byDate[settles] = b
		}
		add(b, t)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	res := Result{NextAppendix: startAppendix + len(dates)}
	for i, d := range dates {
		b := byDate[d]
		b.Appendix = startAppendix + i
		res.Batches = append(res.Batches, *b)
	}
	return res
}

func add(b *model.SettlementBatch, t model.Transaction) {
	b.Transactions = append(b.Transactions, t)
	if t.Date().Before(b.TransferDate) {
		b.TransferDate = t.Date()
	}

	switch t.Kind {
	case model.KindSale:
		b.GrossSales = b.GrossSales.Add(t.Amount)
		b.VoucherAmount = b.VoucherAmount.Add(t.VoucherAmount)
		if t.IsRegistration {
			b.Registrations++
			b.RegistrationFees = b.RegistrationFees.Add(t.RegistrationFee)
		}
	case model.KindRefund:
		b.Refunds = b.Refunds.Add(t.Amount)
		b.VoucherAmount = b.VoucherAmount.Add(t.VoucherAmount)
	case model.KindFee, model.KindPayout:
		// fee accumulated below; payouts never reach here
	}
	b.Fees = b.Fees.Add(t.Fee)
}

// AppendixRange names a run's artifacts after the appendix numbers it
// spans, e.g. "123-148". The ledger CSV and the receipt directory both
// carry this name.
func AppendixRange(start, count int) string {
	return fmt.Sprintf("%d-%d", start, start+count-1)
}
