package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRow(t *testing.T) {
	widths := LayoutRow(100, 3)
	if len(widths) != 3 {
		t.Fatalf("len = %d, want 3", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Errorf("sum = %d, want 100", sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Errorf("widths = %v, want [34 33 33]", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(_, 0) should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Vehicles", Value: "2"},
		{Label: "Total", Value: "£2.58", Hint: "2 items"},
	}, 60)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	short := ContentCard("Short", "A", 30)
	tall := ContentCard("Tall", "A\nB\nC\nD\nE", 20)

	joined := CardRow([]string{tall, short})
	if got, want := lipgloss.Height(joined), lipgloss.Height(tall); got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 200)

		var names []string
		want := 0
		for i, tab := range Tabs {
			names = append(names, " "+tab.Name+" ")
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators

		plain := strings.Join(names, " ")
		if !strings.HasPrefix(bar, plain) {
			t.Fatalf("active=%d: bar %q does not start with %q", active, bar, plain)
		}
		if got := lipgloss.Width(plain); got != want {
			t.Errorf("active=%d: rendered width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('v'); got != 1 {
		t.Errorf("TabIdxByKey('v') = %d, want 1", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestShareBarClamps(t *testing.T) {
	out := ShareBar("AB12CDE", 1.7, 8, 10)
	if !strings.Contains(out, "100%") {
		t.Errorf("ShareBar did not clamp: %q", out)
	}
}

func TestStatusBarWidth(t *testing.T) {
	if w := lipgloss.Width(RenderStatusBar(80, "loaded in 1.2s")); w != 80 {
		t.Errorf("width = %d, want 80", w)
	}
}
