package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatDKK renders an amount with a comma decimal separator and no
// grouping, e.g. "-1234,56". Dinero's CSV import rejects grouped numbers.
func FormatDKK(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

// FormatDKKGrouped renders an amount with Danish thousands grouping,
// e.g. "1.234,56". Used in receipts, where grouping aids readability.
func FormatDKKGrouped(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders a date in the Danish dd-mm-yyyy form used by Dinero.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}
