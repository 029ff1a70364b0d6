// Package register detects membership registrations among sales.
// Members pay the registration fee through MobilePay with a comment
// like "tilmeld <username>"; misspellings are common, so keywords are
// matched by edit distance rather than exactly.
package register

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/f-klubben/mpdinero/internal/model"
)

var keywords = []string{
	"tilmeld",
	"tilmelding",
	"tilmeldelse",
	"indmeld",
	"indmelding",
	"indmeldelse",
}

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Detector annotates sales with registration information.
type Detector struct {
	fee         decimal.Decimal
	maxDistance int
}

// NewDetector creates a Detector with the configured registration fee
// and the maximum edit distance a keyword match tolerates.
func NewDetector(fee decimal.Decimal, maxDistance int) *Detector {
	return &Detector{fee: fee, maxDistance: maxDistance}
}

// Annotate fills the registration fields of every transaction. For a
// registration the voucher amount is the payment minus the fee; for
// everything else it is the full signed amount.
func (d *Detector) Annotate(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		out[i] = d.annotate(t)
	}
	return out
}

func (d *Detector) annotate(t model.Transaction) model.Transaction {
	if t.Kind != model.KindSale || !d.isRegistrationComment(t.Comment) {
		t.IsRegistration = false
		t.VoucherAmount = t.Amount
		return t
	}

	t.IsRegistration = true
	t.RegistrationFee = d.fee
	t.VoucherAmount = t.Amount.Sub(d.fee)

	if t.Amount.LessThan(d.fee) {
		slog.Warn("registration paid less than the registration fee, still treated as registration; edit the export and rerun if wrong",
			"date", t.Timestamp.Format("2006-01-02"),
			"amount", model.FormatDKK(t.Amount),
			"comment", t.Comment)
	}
	return t
}

// isRegistrationComment reports whether any word of the comment is
// within the edit-distance budget of a registration keyword. At least
// two words are required: a keyword and a username.
func (d *Detector) isRegistrationComment(comment string) bool {
	words := wordSplit.Split(strings.ToLower(comment), -1)

	n := 0
	for _, w := range words {
		if w != "" {
			n++
		}
	}
	if n < 2 {
		return false
	}

	for _, w := range words {
		if w == "" {
			continue
		}
		for _, kw := range keywords {
			if levenshtein.ComputeDistance(w, kw) <= d.maxDistance {
				return true
			}
		}
	}
	return false
}
