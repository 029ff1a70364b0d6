package mpcsv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/f-klubben/mpdinero/internal/model"
)

const exportHeader = "Event;Date and time;MyShop-Number;Amount;Currency;Customer name;Comment\n"

func readFixture(t *testing.T) Result {
	t.Helper()
	data, err := os.ReadFile("../../testdata/myshop_export.csv")
	require.NoError(t, err)

	res, err := Read(strings.NewReader(string(data)), "90601")
	require.NoError(t, err)
	return res
}

func TestRead_Fixture(t *testing.T) {
	res := readFixture(t)

	// 2 sales + 1 refund + 1 service fee; Retainable rows fold into
	// sales, the Transfer row is a payout, the foreign row is filtered.
	require.Len(t, res.Transactions, 4)
	assert.Equal(t, 1, res.Filtered)
	assert.Equal(t, 1, res.Payouts)
	assert.Empty(t, res.Errors)

	// Chronological order, oldest first.
	fee := res.Transactions[0]
	assert.Equal(t, model.KindFee, fee.Kind)
	assert.Equal(t, "4.90", fee.Fee.StringFixed(2))

	carl := res.Transactions[1]
	assert.Equal(t, model.KindSale, carl.Kind)
	assert.Equal(t, "Carl Carlsen", carl.CustomerName)
	assert.Equal(t, "1000.00", carl.Amount.StringFixed(2))
	assert.Equal(t, "0.25", carl.Fee.StringFixed(2))
	assert.Equal(t, "ti øl", carl.Comment)

	alice := res.Transactions[2]
	assert.Equal(t, model.KindSale, alice.Kind)
	assert.Equal(t, "200.00", alice.Amount.StringFixed(2))
	assert.Equal(t, "0.25", alice.Fee.StringFixed(2))
	assert.Equal(t, "tilmeld alice", alice.Comment)

	refund := res.Transactions[3]
	assert.Equal(t, model.KindRefund, refund.Kind)
	assert.Equal(t, "-40.00", refund.Amount.StringFixed(2))
	assert.True(t, refund.Fee.IsZero())
}

func TestRead_BadAmountSkipsRow(t *testing.T) {
	in := exportHeader +
		"Payment;2019-08-30 18:00:00;90601;abc;DKK;Carl;\n" +
		"Payment;2019-08-30 17:00:00;90601;100,00;DKK;Dora;\n"

	res, err := Read(strings.NewReader(in), "90601")
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Dora", res.Transactions[0].CustomerName)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Reason, "unparseable amount")
}

func TestRead_UnknownEventSkipsRow(t *testing.T) {
	in := exportHeader +
		"Chargeback;2019-08-30 18:00:00;90601;10,00;DKK;;\n" +
		"Payment;2019-08-30 17:00:00;90601;100,00;DKK;Dora;\n"

	res, err := Read(strings.NewReader(in), "90601")
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, "unknown transaction type")
}

func TestRead_BadTimestampSkipsRow(t *testing.T) {
	in := exportHeader +
		"Payment;yesterday;90601;10,00;DKK;;\n" +
		"Payment;2019-08-30 17:00:00;90601;100,00;DKK;Dora;\n"

	res, err := Read(strings.NewReader(in), "90601")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Reason, "unparseable timestamp")
}

func TestRead_NoTransactions(t *testing.T) {
	_, err := Read(strings.NewReader(exportHeader), "90601")
	assert.ErrorIs(t, err, ErrNoTransactions)

	// Rows exist, none for our number.
	in := exportHeader + "Payment;2019-08-30 17:00:00;12345;100,00;DKK;Dora;\n"
	res, err := Read(strings.NewReader(in), "90601")
	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.Equal(t, 1, res.Filtered)
}

func TestRead_MissingHeader(t *testing.T) {
	_, err := Read(strings.NewReader("just;some;fields\n1;2;3\n"), "90601")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no export header")
}

func TestReadFile_UTF16(t *testing.T) {
	plain := exportHeader + "Payment;2019-08-30 17:00:00;90601;1.234,56;DKK;Åse Ørn;købe øl\n"

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	encoded, err := enc.Bytes([]byte(plain))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	res, err := ReadFile(path, "90601")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Åse Ørn", res.Transactions[0].CustomerName)
	assert.Equal(t, "1234.56", res.Transactions[0].Amount.StringFixed(2))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), "90601")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening export")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1.234,56", want: "1234.56"},
		{in: "-0,25", want: "-0.25"},
		{in: "200,00", want: "200"},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseAmount(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.String(), "parseAmount(%q)", tt.in)
	}
}
