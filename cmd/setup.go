package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/theirongolddev/fleetbill/internal/config"
	"github.com/theirongolddev/fleetbill/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	path := configPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	operator := cfg.Operator.Name
	baseURL := cfg.API.BaseURL
	var apiKey string
	rate := strconv.FormatFloat(cfg.Billing.RatePerMile, 'f', -1, 64)
	metersPerMile := strconv.FormatFloat(cfg.Billing.MetersPerMile, 'f', -1, 64)
	currency := cfg.Billing.Currency
	detail := cfg.Output.Detail
	themeName := cfg.Appearance.Theme

	keyHint := "Leave blank to keep the current key."
	if existing := config.GetAPIKey(cfg); existing != "" {
		keyHint = fmt.Sprintf("Current: %s. Leave blank to keep it.", maskAPIKey(existing))
	}

	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themes = append(themes, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Operator name").
				Description("Printed in the invoice title.").
				Value(&operator).
				Validate(required("operator name")),
			huh.NewInput().
				Title("Fleet API base URL").
				Description("Leave blank to bill from a snapshot directory with --from-dir.").
				Value(&baseURL).
				Validate(validURL),
			huh.NewInput().
				Title("Fleet API key").
				Description(keyHint).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Rate per mile").
				Value(&rate).
				Validate(positiveFloat("rate per mile")),
			huh.NewInput().
				Title("Metres per mile").
				Value(&metersPerMile).
				Validate(positiveFloat("metres per mile")),
			huh.NewSelect[string]().
				Title("Currency").
				Options(
					huh.NewOption("£ (GBP)", "£"),
					huh.NewOption("$ (USD)", "$"),
					huh.NewOption("€ (EUR)", "€"),
				).
				Value(&currency),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Invoice detail layout").
				Options(
					huh.NewOption("Items (array of line items)", "items"),
					huh.NewOption("Legacy (Asset/Asset1 keyed object)", "legacy"),
				).
				Value(&detail),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled.")
			return nil
		}
		return err
	}

	cfg.Operator.Name = strings.TrimSpace(operator)
	cfg.API.BaseURL = strings.TrimSpace(baseURL)
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		cfg.API.APIKey = apiKey
	}
	// Both values passed validation above.
	cfg.Billing.RatePerMile, _ = strconv.ParseFloat(strings.TrimSpace(rate), 64)
	cfg.Billing.MetersPerMile, _ = strconv.ParseFloat(strings.TrimSpace(metersPerMile), 64)
	cfg.Billing.Currency = currency
	cfg.Output.Detail = detail
	cfg.Appearance.Theme = themeName

	if err := config.SaveFile(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)
	fmt.Println("  Run `fleetbill setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func positiveFloat(name string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("%s must be a positive number", name)
		}
		return nil
	}
}

func validURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter an http(s) URL")
	}
	return nil
}
