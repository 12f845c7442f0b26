package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/fleetbill/internal/cli"
	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/model"
	"github.com/theirongolddev/fleetbill/internal/tui/components"
	"github.com/theirongolddev/fleetbill/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const topShares = 8

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	inv := a.report.Invoice

	var meters, miles float64
	for _, it := range inv.Items {
		meters += it.DistanceMeters
		miles += it.DistanceMiles
	}

	metrics := []components.Metric{
		{Label: "Operator", Value: inv.Operator, Hint: invoice.Subtitle(inv)},
		{Label: "Vehicles", Value: cli.FormatNumber(int64(len(inv.Items)))},
		{Label: "Distance", Value: fmt.Sprintf("%.1f mi", miles), Hint: cli.FormatMeters(meters)},
		{Label: "Total Due", Value: cli.FormatMoney(inv.Currency, inv.Total), Hint: invoice.Description(inv)},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	period := mutedStyle.Render(fmt.Sprintf("%s  →  %s",
		cli.FormatDate(inv.Period.Start), cli.FormatDate(inv.Period.End)))

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Billing Period", period+"\n"+mutedStyle.Render(inv.Link), halves[0]),
		components.ContentCard("Share of Total", a.renderShares(components.CardInnerWidth(halves[1])), halves[1]),
	}))

	return b.String()
}

// renderShares lists the vehicles with the largest charges and their share of the total.
func (a App) renderShares(innerW int) string {
	inv := a.report.Invoice
	if len(inv.Items) == 0 || !inv.Total.IsPositive() {
		return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("Nothing billed")
	}

	items := make([]model.LineItem, len(inv.Items))
	copy(items, inv.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Charge.GreaterThan(items[j].Charge)
	})
	if len(items) > topShares {
		items = items[:topShares]
	}

	labelW := 0
	for _, it := range items {
		if n := lipgloss.Width(it.LicensePlate); n > labelW {
			labelW = n
		}
	}
	barW := innerW - labelW - 6
	if barW < 5 {
		barW = 5
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		share, _ := it.Charge.Div(inv.Total).Float64()
		lines = append(lines, components.ShareBar(it.LicensePlate, share, labelW, barW))
	}
	return strings.Join(lines, "\n")
}
