package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/model"
)

const (
	summarySheet = "summary"
	itemsSheet   = "items"
)

// XLSX renders inv as a workbook with a summary sheet and an items sheet.
func XLSX(inv model.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("export: xlsx: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("export: xlsx: %w", err)
	}

	if err := writeSummary(f, summarySheet, inv); err != nil {
		return nil, err
	}
	if err := writeItems(f, itemsSheet, inv); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, sheet string, inv model.Invoice) error {
	summary := [][2]any{
		{invoice.Title(inv), nil},
		{invoice.Subtitle(inv), nil},
		{"Invoice ID", inv.ID},
		{"Operator", inv.Operator},
		{"Period start", inv.Period.Start},
		{"Period end", inv.Period.End},
		{"Rate per mile", inv.RatePerMile},
		{"Metres per mile", inv.MetersPerMile},
		{"Currency", inv.Currency},
		{"Vehicles", len(inv.Items)},
		{"Total due", inv.Total.InexactFloat64()},
		{"Link", inv.Link},
	}
	for i, row := range summary {
		r := i + 1
		if err := f.SetCellValue(sheet, cell(1, r), row[0]); err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
		if row[1] == nil {
			continue
		}
		if err := f.SetCellValue(sheet, cell(2, r), row[1]); err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
	}
	return nil
}

func writeItems(f *excelize.File, sheet string, inv model.Invoice) error {
	headers := []any{"Vehicle", "Start odometer (m)", "End odometer (m)", "Distance (m)", "Distance (miles)", "Charge"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	for i, it := range inv.Items {
		row := []any{
			it.LicensePlate,
			it.StartOdometerMeters,
			it.EndOdometerMeters,
			it.DistanceMeters,
			it.DistanceMiles,
			it.Charge.InexactFloat64(),
		}
		if err := f.SetSheetRow(sheet, cell(1, i+2), &row); err != nil {
			return fmt.Errorf("export: xlsx: %w", err)
		}
	}
	totalRow := len(inv.Items) + 2
	if err := f.SetCellValue(sheet, cell(1, totalRow), "Total"); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	if err := f.SetCellValue(sheet, cell(6, totalRow), inv.Total.InexactFloat64()); err != nil {
		return fmt.Errorf("export: xlsx: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
