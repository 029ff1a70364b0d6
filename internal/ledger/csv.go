// Package ledger renders settlement batches as Dinero journal-import CSV.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/f-klubben/mpdinero/internal/config"
	"github.com/f-klubben/mpdinero/internal/model"
)

// Header is the column contract of Dinero's journal CSV import. Order
// and names must match exactly or the import is refused.
const Header = "Bilag nr.;Dato;Tekst;Konto;Beløb;Modkonto"

const numFields = 6

const (
	colAppendix = 0
	colDate     = 1
	colText     = 2
	colAccount  = 3
	colAmount   = 4
	colContra   = 5
)

// Write renders all batches to w, header included. Every batch's lines
// sum to zero, so the journal entry balances on import.
func Write(w io.Writer, batches []model.SettlementBatch, cfg *config.Config) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ";")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, b := range batches {
		for _, row := range MarshalBatch(b, cfg) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing appendix %d: %w", b.Appendix, err)
			}
		}
	}
	return cw.Error()
}

// MarshalBatch converts one batch to its Dinero rows. The stregsystem
// profile books voucher credit and registration fees on separate lines;
// the sales profile books the gross against the sales account.
func MarshalBatch(b model.SettlementBatch, cfg *config.Config) [][]string {
	if cfg.MyShop.Profile == config.ProfileStregsystem {
		return marshalStregsystem(b, cfg)
	}
	return marshalSales(b, cfg)
}

func marshalSales(b model.SettlementBatch, cfg *config.Config) [][]string {
	return [][]string{
		row(b, "Salg via MP fra "+b.TransferDate.Format("02-01"), cfg.Dinero.Bank, b.NetToBank()),
		row(b, "Salg", cfg.Dinero.Sales, b.Total().Neg()),
		row(b, "MP-gebyr", cfg.Dinero.Fees, b.Fees),
	}
}

func marshalStregsystem(b model.SettlementBatch, cfg *config.Config) [][]string {
	rows := [][]string{
		row(b, "MP fra "+b.TransferDate.Format("02-01"), cfg.Dinero.Bank, b.NetToBank()),
	}
	if b.VoucherAmount.Sign() != 0 {
		rows = append(rows, row(b, "Gavekort", cfg.Dinero.Voucher, b.VoucherAmount.Neg()))
	}
	if b.Registrations > 0 {
		rows = append(rows, row(b, "Tilmeldingsgebyr", cfg.Dinero.Sales, b.RegistrationFees.Neg()))
	}
	return append(rows, row(b, "MP-gebyr", cfg.Dinero.Fees, b.Fees))
}

func row(b model.SettlementBatch, text, account string, amount decimal.Decimal) []string {
	r := make([]string, numFields)
	r[colAppendix] = strconv.Itoa(b.Appendix)
	r[colDate] = model.FormatDate(b.SettlementDate)
	r[colText] = text
	r[colAccount] = account
	r[colAmount] = model.FormatDKK(amount)
	r[colContra] = ""
	return r
}
