package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/phpdave11/gofpdf"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
)

// now is replaced in tests.
var now = time.Now

// WritePDF renders b as a one-page (or longer) A4 statement.
func WritePDF(w io.Writer, b budget.Budget, product string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle(b.Title, true)
	pdf.SetCreator(product+" Budget Calculator", true)
	// Core fonts are cp1252; map what fits and replace the rest.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetTextColor(146, 64, 14)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(b.Title), "", 1, "C", false, 0, "")

	pdf.SetTextColor(80, 80, 80)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(b.Date), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{12, 128, 42}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(colW[0], 8, "#", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "ITEM", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[2], 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(30, 30, 30)
	}
	header()

	for i, e := range b.Expenses {
		if pdf.GetY() > 265 {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(colW[0], 8, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, tr(trimTo(e.Name, 70)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 8, cli.FormatAmount(e.Amount), "1", 1, "R", false, 0, "")
	}
	if len(b.Expenses) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(colW[0]+colW[1]+colW[2], 8, "No expenses", "1", 1, "C", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, "Total: "+cli.FormatAmount(b.Total), "", 1, "R", false, 0, "")

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	footer := fmt.Sprintf("Generated by %s Budget Calculator on %s", product, now().Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 10, tr(footer), "", 0, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// FileName returns a default file name for b's statement, such as
// "groceries-2024-05-01.pdf".
func FileName(b budget.Budget) string {
	return slug(b.Title+" "+b.Date) + ".pdf"
}

func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "budget"
	}
	return out
}
