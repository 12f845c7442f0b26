package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/fleetbill/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return err
	}
	path := configPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", path)
	if config.Exists(path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Operator]")
	fmt.Printf("    Name: %s\n", cfg.Operator.Name)
	fmt.Println()

	fmt.Println("  [Period]")
	fmt.Printf("    Start: %s\n", cfg.Period.Start.Format(time.RFC3339))
	fmt.Printf("    End:   %s\n", cfg.Period.End.Format(time.RFC3339))
	fmt.Println()

	b := cfg.Billing
	fmt.Println("  [Billing]")
	fmt.Printf("    Rate per mile:   %s%g\n", b.Currency, b.RatePerMile)
	fmt.Printf("    Metres per mile: %g\n", b.MetersPerMile)
	fmt.Printf("    Rounding:        %s\n", b.Rounding)
	fmt.Printf("    Negative miles:  %s\n", map[bool]string{true: "billed", false: "rejected"}[b.AllowNegativeDistance])
	fmt.Println()

	fmt.Println("  [API]")
	if u := config.GetBaseURL(cfg); u != "" {
		fmt.Printf("    Base URL: %s\n", u)
	} else {
		fmt.Println("    Base URL: not configured")
	}
	if key := config.GetAPIKey(cfg); key != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Printf("    Timeout:  %s\n", cfg.API.Timeout())
	fmt.Println()

	fmt.Println("  [Output]")
	fmt.Printf("    Format: %s\n", cfg.Output.Format)
	fmt.Printf("    Detail: %s\n", cfg.Output.Detail)
	fmt.Printf("    Link:   %s\n", cfg.Output.Link)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Invalid: %v\n", err)
	}
	fmt.Println("  Run `fleetbill setup` to reconfigure.")
	return nil
}
