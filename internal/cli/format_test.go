package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fleetbill/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "£0.00"},
		{"0.51", "£0.51"},
		{"1234.5", "£1,234.50"},
		{"-0.51", "-£0.51"},
		{"1000000", "£1,000,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney("£", decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4000: "-4,000"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDistances(t *testing.T) {
	if got := FormatMeters(4000); got != "4,000 m" {
		t.Errorf("FormatMeters = %q", got)
	}
	if got := FormatMiles(2.48549); got != "2.49 mi" {
		t.Errorf("FormatMiles = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := FormatElapsed(85 * time.Millisecond); got != "85ms" {
		t.Errorf("got %q", got)
	}
	if got := FormatElapsed(1234 * time.Millisecond); got != "1.2s" {
		t.Errorf("got %q", got)
	}
}

func TestRenderInvoice(t *testing.T) {
	inv := model.Invoice{
		Operator: "Bob's Taxis",
		Currency: "£",
		Link:     "http://www.zetiorg.com",
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

	out := RenderInvoice(inv)
	for _, want := range []string{"INVOICE BOB'S TAXIS", "AB12CDE", "4,000 m", "£0.51", "TOTAL", "Total Due in £: 0.51"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Negative distance") {
		t.Error("unexpected negative distance warning")
	}
}

func TestRenderTable_UnicodeWidths(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "£1.00"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	first := len([]rune(lines[0]))
	for _, l := range lines[1:] {
		if n := len([]rune(l)); n != first {
			t.Errorf("line width %d != %d: %q", n, first, l)
		}
	}
}
