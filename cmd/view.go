package cmd

import (
	"fmt"

	"github.com/theirongolddev/fleetbill/internal/tui"
	"github.com/theirongolddev/fleetbill/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Run billing and browse the invoice interactively",
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	// Log lines would corrupt the alternate screen.
	env.log = zap.NewNop()
	defer env.finish()

	theme.SetActive(env.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	ctx := cmd.Context()
	app := tui.NewApp(func() (tui.Report, error) {
		inv, snap, err := env.bill(ctx)
		return tui.Report{Invoice: inv, Fleet: snap.Fleet}, err
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
