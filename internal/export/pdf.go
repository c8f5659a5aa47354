package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/Simplici0/profitcalc/internal/money"
	"github.com/Simplici0/profitcalc/internal/quote"
)

// Page layout constants (A4 portrait in mm).
const (
	pdfMargin     = 15.0
	pdfLabelWidth = 90.0
	pdfValueWidth = 90.0
	pdfRowHeight  = 7.0
)

// PDF writes a one-page summary of q. The core PDF fonts only cover
// Windows-1252, so amounts carry the ASCII currency code instead of a symbol.
func PDF(w io.Writer, q quote.Quote, currencyCode string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCreationDate(q.CreatedAt)
	pdf.SetTitle(q.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(q.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Ref. %s - %s UTC", q.Ref, q.CreatedAt.Format("2006-01-02 15:04"))), "", 1, "L", false, 0, "")
	if q.Notes != "" {
		pdf.MultiCell(0, 5, tr(q.Notes), "", "L", false)
	}
	pdf.SetTextColor(31, 41, 55)

	cur := money.Currency{Symbol: currencyCode + " "}
	for _, section := range Summary(q, cur) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(section.Title), "B", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		for i, line := range section.Lines {
			fill := i%2 == 1
			pdf.SetFillColor(243, 244, 246)
			pdf.CellFormat(pdfLabelWidth, pdfRowHeight, tr(line.Label), "", 0, "L", fill, 0, "")
			pdf.CellFormat(pdfValueWidth, pdfRowHeight, tr(line.Value), "", 1, "R", fill, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.MultiCell(0, 4, tr("Estimación preliminar. Precio sugerido y costo por unidad redondeados hacia arriba al centavo."), "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render quote pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write quote pdf: %w", err)
	}
	return nil
}
