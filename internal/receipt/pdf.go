package receipt

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/f-klubben/mpdinero/internal/config"
	"github.com/f-klubben/mpdinero/internal/model"
)

// Danish VAT included in a gross amount: 25% of net is 20% of gross.
var vatFactor = decimal.NewFromFloat(0.2)

// PDFRenderer renders appendix documents as A4 PDFs.
type PDFRenderer struct {
	cfg *config.Config
}

// NewPDFRenderer creates a PDFRenderer using the org letterhead,
// receipt title, and profile from cfg.
func NewPDFRenderer(cfg *config.Config) *PDFRenderer {
	return &PDFRenderer{cfg: cfg}
}

// Render writes the batch's appendix PDF to path.
func (r *PDFRenderer) Render(b model.SettlementBatch, path string) error {
	stregsystem := r.cfg.MyShop.Profile == config.ProfileStregsystem

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 13)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	cols := salesColumns
	if stregsystem {
		cols = stregsystemColumns
	}

	// Continuation pages repeat the table header; page one has the
	// full info block instead.
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() != 1 {
			writeTableHeader(pdf, tr, cols)
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.writeTitle(pdf, tr, b)
	r.writeInfo(pdf, tr, b, stregsystem)

	writeTableHeader(pdf, tr, cols)
	for _, t := range b.Transactions {
		if stregsystem {
			r.writeStregsystemRow(pdf, tr, t)
		} else {
			r.writeSalesRow(pdf, tr, t)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("rendering appendix %d: %w", b.Appendix, err)
	}
	return nil
}

type column struct {
	title string
	width float64
	align string
}

var salesColumns = []column{
	{"Kl.", 11, "R"},
	{"Navn", 101, "L"},
	{"Indb., kr.", 26, "R"},
	{"Moms, kr.", 23, "R"},
	{"MP-gebyr, kr.", 28, "R"},
}

var stregsystemColumns = []column{
	{"Kl.", 11, "R"},
	{"Besked", 82, "L"},
	{"Tilm.gebyr, kr.", 25, "R"},
	{"Indb., kr.", 20, "R"},
	{"MP-gebyr, kr.", 26, "R"},
	{"Gavekort, kr.", 25, "R"},
}

func (r *PDFRenderer) writeTitle(pdf *fpdf.Fpdf, tr func(string) string, b model.SettlementBatch) {
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(157, 12, tr(r.cfg.MyShop.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(155, 5, tr("Bilagsdato: "+model.FormatDate(b.SettlementDate)), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 7)
	org := r.cfg.Organization
	pdf.MultiCell(0, 3.5, tr(org.Name+"\nCVR: "+org.CVR+"\n"+org.Website), "", "L", false)
	pdf.Ln(3)
}

// writeInfo prints the batch totals block above the transaction table.
func (r *PDFRenderer) writeInfo(pdf *fpdf.Fpdf, tr func(string) string, b model.SettlementBatch, stregsystem bool) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, "Oplysninger", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	line := func(label string, value string) {
		pdf.CellFormat(60, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 5, tr(value), "", 1, "R", false, 0, "")
	}

	line("Dato for indbetalinger:", model.FormatDate(b.TransferDate))
	line("Antal indbetalinger:", fmt.Sprintf("%d", b.CountKind(model.KindSale)))
	if stregsystem {
		line("Antal tilmeldinger:", fmt.Sprintf("%d", b.Registrations))
	}
	line("MobilePay-gebyr, kr.:", model.FormatDKKGrouped(b.Fees))
	line("Indbetalt, kr.:", model.FormatDKKGrouped(b.Total()))
	line("Til banken, kr.:", model.FormatDKKGrouped(b.NetToBank()))
	if stregsystem {
		line("Gavekort, kr.:", model.FormatDKKGrouped(b.VoucherAmount))
		line("Tilmeldingsgebyr inkl. moms, kr.:", model.FormatDKKGrouped(b.RegistrationFees))
		line("Moms, kr.:", model.FormatDKKGrouped(b.RegistrationFees.Mul(vatFactor)))
	} else {
		line("Moms, kr.:", model.FormatDKKGrouped(b.Total().Mul(vatFactor)))
	}
	pdf.Ln(8)
}

func writeTableHeader(pdf *fpdf.Fpdf, tr func(string) string, cols []column) {
	pdf.SetFont("Arial", "", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 6, tr(c.title), "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(8)
}

func (r *PDFRenderer) writeSalesRow(pdf *fpdf.Fpdf, tr func(string) string, t model.Transaction) {
	setRowColor(pdf, t)

	pdf.CellFormat(11, 7, t.Timestamp.Format("15:04"), "", 0, "R", false, 0, "")
	pdf.CellFormat(101, 7, tr(clip(t.CustomerName)), "", 0, "L", false, 0, "")
	pdf.CellFormat(26, 7, model.FormatDKKGrouped(t.Amount), "", 0, "R", false, 0, "")
	pdf.CellFormat(23, 7, model.FormatDKKGrouped(t.Amount.Mul(vatFactor)), "", 0, "R", false, 0, "")
	pdf.CellFormat(28, 7, model.FormatDKKGrouped(t.Fee), "", 1, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

func (r *PDFRenderer) writeStregsystemRow(pdf *fpdf.Fpdf, tr func(string) string, t model.Transaction) {
	setRowColor(pdf, t)

	pdf.CellFormat(11, 7, t.Timestamp.Format("15:04"), "", 0, "R", false, 0, "")
	if t.Comment != "" {
		pdf.CellFormat(82, 7, tr(clip(t.Comment)), "", 0, "L", false, 0, "")
	} else {
		// No message: show the payer's name instead, in italics.
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(82, 7, tr(clip(t.CustomerName)), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
	}

	regFee := ""
	if t.IsRegistration {
		regFee = model.FormatDKKGrouped(t.RegistrationFee)
	}
	pdf.CellFormat(25, 7, regFee, "", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, model.FormatDKKGrouped(t.Amount), "", 0, "R", false, 0, "")
	pdf.CellFormat(26, 7, model.FormatDKKGrouped(t.Fee), "", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, model.FormatDKKGrouped(t.VoucherAmount), "", 1, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

// Refund rows print in red so they stand out on the appendix.
func setRowColor(pdf *fpdf.Fpdf, t model.Transaction) {
	if t.Kind == model.KindRefund {
		pdf.SetTextColor(220, 0, 0)
	} else {
		pdf.SetTextColor(0, 0, 0)
	}
}

// clip keeps names and comments inside their table column.
func clip(s string) string {
	r := []rune(s)
	if len(r) > 49 {
		return string(r[:49])
	}
	return s
}
