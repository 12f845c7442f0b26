package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/theirongolddev/fleetbill/internal/cli"
	"github.com/theirongolddev/fleetbill/internal/export"
	"github.com/theirongolddev/fleetbill/internal/invoice"

	"github.com/spf13/cobra"
)

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Generate the invoice for the billing period (default command)",
	RunE:  runBill,
}

func init() {
	rootCmd.AddCommand(billCmd)
}

func runBill(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	format, err := export.ParseFormat(env.cfg.Output.Format)
	if err != nil {
		return err
	}
	layout, err := invoice.ParseLayout(env.cfg.Output.Detail)
	if err != nil {
		return err
	}
	if format.Binary() && flagOut == "" {
		return fmt.Errorf("--out is required for %s output", format)
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Billing %s for %s to %s...\n",
			env.cfg.Operator.Name,
			cli.FormatDate(env.cfg.Period.Start),
			cli.FormatDate(env.cfg.Period.End))
	}

	inv, _, err := env.bill(cmd.Context())
	if err != nil {
		return err
	}

	// Render fully before touching the destination so a failure leaves no partial file.
	var buf bytes.Buffer
	if format == export.FormatTable {
		buf.WriteString(cli.RenderInvoice(inv))
	} else if err := export.Write(&buf, inv, format, layout); err != nil {
		env.metrics.RecordFailure("render")
		return err
	}

	if flagOut == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(flagOut, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing invoice: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s bill generated: %s (%d vehicles, %s)\n",
			format, flagOut, len(inv.Items), cli.FormatMoney(inv.Currency, inv.Total))
	}
	return nil
}
