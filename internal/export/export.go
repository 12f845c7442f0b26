// Package export writes an assembled invoice as JSON, PDF, or XLSX.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/model"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatPDF   Format = "pdf"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat maps a config/flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatTable, FormatPDF, FormatXLSX:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("export: unknown format %q", s)
}

// Binary reports whether the format must not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatPDF || f == FormatXLSX
}

// Write encodes inv to w. FormatTable is rendered by the cli package and is
// rejected here.
func Write(w io.Writer, inv model.Invoice, f Format, layout invoice.Layout) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		return JSON(w, invoice.NewDocument(inv, layout))
	case FormatPDF:
		data, err = PDF(inv)
	case FormatXLSX:
		data, err = XLSX(inv)
	default:
		return fmt.Errorf("export: format %q is not a file encoding", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// JSON writes the bill document indented by two spaces.
func JSON(w io.Writer, doc invoice.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	return nil
}
