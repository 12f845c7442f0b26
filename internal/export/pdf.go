package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/model"
)

// PDF renders a one-page statement for inv.
func PDF(inv model.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator keeps currency symbols such as £ intact.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(invoice.Title(inv), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr(invoice.Title(inv)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(invoice.Subtitle(inv)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice ID: %s", inv.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		inv.Period.Start.Format(time.RFC3339), inv.Period.End.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(invoice.Description(inv)))
	pdf.Ln(5)
	pdf.Cell(0, 6, inv.Link)
	pdf.Ln(8)

	widths := []float64{35, 35, 35, 30, 25, 25}
	headers := []string{"Vehicle", "Start (m)", "End (m)", "Distance (m)", "Miles", "Charge"}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, it := range inv.Items {
		row := []string{
			it.LicensePlate,
			metres(it.StartOdometerMeters),
			metres(it.EndOdometerMeters),
			metres(it.DistanceMeters),
			strconv.FormatFloat(it.DistanceMiles, 'f', 2, 64),
			it.Charge.StringFixed(2),
		}
		for i, cell := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, tr(invoice.Summary(inv)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func metres(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
