package tui

import (
	"strconv"

	"github.com/theirongolddev/fleetbill/internal/cli"
	"github.com/theirongolddev/fleetbill/internal/model"
	"github.com/theirongolddev/fleetbill/internal/tui/components"
	"github.com/theirongolddev/fleetbill/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var vehicleColumns = []table.Column{
	{Title: "Vehicle", Width: 12},
	{Title: "Start (m)", Width: 14},
	{Title: "End (m)", Width: 14},
	{Title: "Distance (m)", Width: 14},
	{Title: "Miles", Width: 10},
	{Title: "Charge", Width: 12},
}

func newVehiclesTable() table.Model {
	t := theme.Active

	tbl := table.New(
		table.WithColumns(vehicleColumns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Accent).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(t.TextPrimary).
		Background(t.SurfaceHover).
		Bold(false)
	styles.Cell = styles.Cell.Foreground(t.TextMuted)
	tbl.SetStyles(styles)

	return tbl
}

func vehicleRows(inv model.Invoice) []table.Row {
	rows := make([]table.Row, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, table.Row{
			it.LicensePlate,
			cli.FormatNumber(int64(it.StartOdometerMeters)),
			cli.FormatNumber(int64(it.EndOdometerMeters)),
			cli.FormatNumber(int64(it.DistanceMeters)),
			strconv.FormatFloat(it.DistanceMiles, 'f', 2, 64),
			cli.FormatMoney(inv.Currency, it.Charge),
		})
	}
	return rows
}

// resizeVehicles fits the table to the content area left by the tab bar,
// card chrome, and status bar.
func (a *App) resizeVehicles() {
	h := a.height - 7
	if h < minContentHeight {
		h = minContentHeight
	}
	a.vehicles.SetHeight(h)
	a.vehicles.SetWidth(components.CardInnerWidth(a.contentWidth()))
}

func (a App) renderVehiclesTab(cw int) string {
	inv := a.report.Invoice
	title := "Vehicles (" + strconv.Itoa(len(inv.Items)) + ") · Total " + cli.FormatMoney(inv.Currency, inv.Total)
	return components.ContentCard(title, a.vehicles.View(), cw)
}
