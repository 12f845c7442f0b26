package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/model"
)

func sampleInvoice() model.Invoice {
	return model.Invoice{
		ID:            "2f1c7d0e-0000-4000-8000-000000000001",
		Operator:      "Bob's Taxis",
		GeneratedAt:   time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC),
		Period:        model.BillingPeriod{Start: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2021, 2, 28, 23, 59, 0, 0, time.UTC)},
		RatePerMile:   0.207,
		MetersPerMile: 1609.34,
		Currency:      "£",
		Link:          invoice.DefaultLink,
		Items: []model.LineItem{{
			LicensePlate:        "AB12CDE",
			StartOdometerMeters: 1000,
			EndOdometerMeters:   5000,
			DistanceMeters:      4000,
			DistanceMiles:       2.4855,
			Charge:              decimal.RequireFromString("0.51"),
		}},
		Total: decimal.RequireFromString("0.51"),
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "table", "pdf", "xlsx"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v", s, f, err)
		}
	}
	if f, _ := ParseFormat(""); f != FormatJSON {
		t.Errorf("empty format = %q, want json", f)
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Error("expected error for csv")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleInvoice(), FormatJSON, invoice.LayoutItems); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "{\n  \"bill\": {\n    \"title\": \"Invoice Bob's Taxis\"") {
		t.Errorf("unexpected prefix:\n%s", out)
	}
	if !strings.Contains(out, `"summary": "Total Due in £: 0.51"`) {
		t.Errorf("missing summary:\n%s", out)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestPDF(t *testing.T) {
	data, err := PDF(sampleInvoice())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:min(len(data), 8)])
	}
}

func TestXLSX(t *testing.T) {
	data, err := XLSX(sampleInvoice())
	if err != nil {
		t.Fatalf("XLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got, _ := f.GetCellValue(summarySheet, "A1"); got != "Invoice Bob's Taxis" {
		t.Errorf("summary A1 = %q", got)
	}
	if got, _ := f.GetCellValue(itemsSheet, "A2"); got != "AB12CDE" {
		t.Errorf("items A2 = %q", got)
	}
	if got, _ := f.GetCellValue(itemsSheet, "F2"); got != "0.51" {
		t.Errorf("items F2 = %q, want 0.51", got)
	}
	if got, _ := f.GetCellValue(itemsSheet, "A3"); got != "Total" {
		t.Errorf("items A3 = %q, want Total", got)
	}
}

func TestXLSX_CellErrorsSurface(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeSummary(f, "missing", sampleInvoice()); err == nil || !strings.Contains(err.Error(), "export: xlsx:") {
		t.Errorf("writeSummary on missing sheet = %v, want wrapped excelize error", err)
	}
	if err := writeItems(f, "missing", sampleInvoice()); err == nil || !strings.Contains(err.Error(), "export: xlsx:") {
		t.Errorf("writeItems on missing sheet = %v, want wrapped excelize error", err)
	}
}

func TestWrite_RejectsTable(t *testing.T) {
	if err := Write(&bytes.Buffer{}, sampleInvoice(), FormatTable, invoice.LayoutItems); err == nil {
		t.Fatal("expected error for table format")
	}
}
