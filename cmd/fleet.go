package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/fleetbill/internal/cli"
	"github.com/theirongolddev/fleetbill/internal/pipeline"

	"github.com/spf13/cobra"
)

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Show each vehicle's matched odometer readings without billing",
	RunE:  runFleet,
}

func init() {
	rootCmd.AddCommand(fleetCmd)
}

func runFleet(cmd *cobra.Command, _ []string) error {
	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Fetching fleet and snapshots...\n")
	}
	snap, err := env.acquire(cmd.Context())
	if err != nil {
		return err
	}

	readings := pipeline.Inspect(snap, env.cfg.Billing)
	if len(readings) == 0 {
		fmt.Println("\n  Fleet is empty.")
		return nil
	}

	problems := 0
	rows := make([][]string, 0, len(readings))
	for _, r := range readings {
		status := "ok"
		if r.Err != nil {
			problems++
			status = problemLabel(r.Err)
		}
		rows = append(rows, []string{
			r.Vehicle.LicensePlate,
			strings.TrimSpace(r.Vehicle.Make + " " + r.Vehicle.Model),
			odometers(r.Start),
			odometers(r.End),
			status,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FLEET  %s", env.cfg.Operator.Name)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Readings (%d vehicles)", len(readings)),
		Headers: []string{"Vehicle", "Make / Model", "Start", "End", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	if problems > 0 {
		return fmt.Errorf("%d of %d vehicles cannot be billed", problems, len(readings))
	}
	fmt.Println("  All vehicles can be billed.")
	return nil
}

func odometers(records []pipeline.MergedRecord) string {
	if len(records) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, cli.FormatMeters(r.OdometerMeters))
	}
	return strings.Join(parts, ", ")
}

func problemLabel(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrMissingHistoryData):
		return "missing history"
	case errors.Is(err, pipeline.ErrAmbiguousHistoryData):
		var amb *pipeline.AmbiguousHistoryDataError
		if errors.As(err, &amb) {
			return "ambiguous (" + strconv.Itoa(amb.Count) + " " + amb.Period.String() + ")"
		}
		return "ambiguous"
	case errors.Is(err, pipeline.ErrNegativeDistance):
		return "negative distance"
	case errors.Is(err, pipeline.ErrUnbillableDistance):
		return "unbillable distance"
	case errors.Is(err, pipeline.ErrDuplicateVehicle):
		return "duplicate"
	}
	return err.Error()
}
