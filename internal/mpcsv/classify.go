package mpcsv

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/f-klubben/mpdinero/internal/model"
)

// timestampLayouts the provider has been seen to use.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"02-01-2006 15:04:05",
	"2006-01-02T15:04:05",
}

// classifier turns raw export records into Transactions. The provider
// interleaves a Retainable (fee) row with each Payment row; the fee row
// arrives first in chronological order and is folded into the sale.
type classifier struct {
	myshopNumber string
	filtered     int

	pendingFee    decimal.Decimal
	hasPendingFee bool
}

func newClassifier(myshopNumber string) *classifier {
	return &classifier{myshopNumber: myshopNumber}
}

// classify maps one record to a Transaction. A nil Transaction with a
// nil error means the row was filtered (another MyShop number, or a fee
// row folded into the sale that follows it).
func (c *classifier) classify(rec []string, cols map[string]int, line int) (*model.Transaction, error) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	if get(colMyShopNum) != c.myshopNumber {
		c.filtered++
		return nil, nil
	}

	event := get(colEvent)

	if event == eventTransfer {
		return &model.Transaction{Kind: model.KindPayout, Line: line}, nil
	}

	ts, err := parseTimestamp(get(colDateTime))
	if err != nil {
		return nil, RowError{Line: line, Reason: err.Error()}
	}

	amount, err := parseAmount(get(colAmount))
	if err != nil {
		return nil, RowError{Line: line, Reason: err.Error()}
	}

	switch event {
	case eventPayment:
		fee := decimal.Zero
		if c.hasPendingFee {
			fee = c.pendingFee
			c.hasPendingFee = false
		}
		return &model.Transaction{
			Kind:         model.KindSale,
			Amount:       amount,
			Fee:          fee,
			Timestamp:    ts,
			CustomerName: get(colCustomer),
			Comment:      get(colComment),
			Line:         line,
		}, nil

	case eventRefund:
		// Refunds carry the signed (negative) amount and no fee.
		return &model.Transaction{
			Kind:         model.KindRefund,
			Amount:       amount.Abs().Neg(),
			Timestamp:    ts,
			CustomerName: get(colCustomer),
			Line:         line,
		}, nil

	case eventRetainable:
		// Fee for the sale that follows; hold it until then.
		c.pendingFee = amount.Abs()
		c.hasPendingFee = true
		return nil, nil

	case eventServiceFee:
		return &model.Transaction{
			Kind:      model.KindFee,
			Fee:       amount.Abs(),
			Timestamp: ts,
			Comment:   get(colComment),
			Line:      line,
		}, nil
	}

	return nil, RowError{Line: line, Reason: fmt.Sprintf("unknown transaction type %q", event)}
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseAmount reads a Danish-formatted amount: dot thousands grouping,
// comma decimal separator, e.g. "1.234,56" or "-0,25".
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable amount %q", s)
	}
	return d, nil
}
