package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fleetbill/internal/tui/components"
	"github.com/theirongolddev/fleetbill/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderFleetTab(cw int) string {
	t := theme.Active
	fleet := a.report.Fleet

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	vinW := innerW - 12 - 16 - 16 - 3
	if vinW < 8 {
		vinW = 8
	}
	line := func(plate, mk, mdl, vin string) string {
		return fmt.Sprintf("%-12s %-16s %-16s %s", truncStr(plate, 12), truncStr(mk, 16), truncStr(mdl, 16), truncStr(vin, vinW))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(line("Plate", "Make", "Model", "VIN")))
	for _, v := range fleet {
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(line(v.LicensePlate, v.Make, v.Model, v.VIN)))
	}
	if len(fleet) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No vehicles in fleet"))
	}

	return components.ContentCard(fmt.Sprintf("Fleet (%d)", len(fleet)), b.String(), cw)
}
