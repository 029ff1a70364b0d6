// Package mpcsv reads MobilePay MyShop transaction exports and
// classifies each row by transaction kind.
package mpcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/f-klubben/mpdinero/internal/model"
)

// ErrNoTransactions indicates the export held no usable rows for the
// configured MyShop number.
var ErrNoTransactions = errors.New("no transactions for MyShop number")

// Column names in the MyShop export header. The column set is a fixed
// contract with the provider.
const (
	colEvent     = "Event"
	colDateTime  = "Date and time"
	colMyShopNum = "MyShop-Number"
	colAmount    = "Amount"
	colCustomer  = "Customer name"
	colComment   = "Comment"
)

// Event labels the provider uses.
const (
	eventPayment    = "Payment"
	eventRefund     = "Refund"
	eventRetainable = "Retainable"
	eventServiceFee = "ServiceFee"
	eventTransfer   = "Transfer"
)

// RowError describes a row that could not be classified. Such rows are
// skipped, reported, and never abort the run.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result is the outcome of reading one export file.
type Result struct {
	Transactions []model.Transaction // chronological order
	Errors       []RowError          // rows skipped as unparseable
	Filtered     int                 // rows addressed to another MyShop number
	Payouts      int                 // Transfer rows seen for the number
}

// ReadFile opens and reads a MyShop export. The provider writes
// UTF-16LE; plain UTF-8 files are accepted too for convenience.
func ReadFile(path, myshopNumber string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	return Read(decodeReader(f), myshopNumber)
}

// Read parses a decoded (UTF-8) export stream. The file lists newest
// rows first; the returned transactions are in chronological order.
func Read(r io.Reader, myshopNumber string) (Result, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("reading export CSV: %w", err)
	}

	headerIdx, cols, err := locateHeader(records)
	if err != nil {
		return Result{}, err
	}

	var res Result
	c := newClassifier(myshopNumber)

	// Iterate data rows newest-to-oldest in reverse, so the classifier
	// sees transactions in the order they happened.
	for i := len(records) - 1; i > headerIdx; i-- {
		line := i + 1
		txn, err := c.classify(records[i], cols, line)
		if err != nil {
			var re RowError
			if errors.As(err, &re) {
				res.Errors = append(res.Errors, re)
				continue
			}
			return Result{}, err
		}
		if txn == nil {
			continue
		}
		if txn.Kind == model.KindPayout {
			res.Payouts++
			continue
		}
		res.Transactions = append(res.Transactions, *txn)
	}
	res.Filtered = c.filtered

	if len(res.Transactions) == 0 {
		return res, ErrNoTransactions
	}
	return res, nil
}

// locateHeader finds the header record. Exports carry preamble lines
// before it, so scan for the record naming the Event column.
func locateHeader(records [][]string) (int, map[string]int, error) {
	for i, rec := range records {
		cols := make(map[string]int, len(rec))
		for j, name := range rec {
			cols[name] = j
		}
		if _, ok := cols[colEvent]; !ok {
			continue
		}
		for _, required := range []string{colDateTime, colMyShopNum, colAmount} {
			if _, ok := cols[required]; !ok {
				return 0, nil, fmt.Errorf("export header missing %q column", required)
			}
		}
		return i, cols, nil
	}
	return 0, nil, errors.New("no export header found")
}

// decodeReader handles the provider's UTF-16LE encoding. A BOM wins;
// without one, interleaved NUL bytes betray UTF-16.
func decodeReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	sniff, _ := br.Peek(4)

	utf16 := len(sniff) >= 2 &&
		((sniff[0] == 0xFF && sniff[1] == 0xFE) ||
			bytes.IndexByte(sniff, 0x00) >= 0)
	if !utf16 {
		return br
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	return transform.NewReader(br, dec)
}
