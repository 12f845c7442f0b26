// Package cmd implements the fleetbill CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/fleetbill/internal/config"
	"github.com/theirongolddev/fleetbill/internal/fleetapi"
	"github.com/theirongolddev/fleetbill/internal/invoice"
	"github.com/theirongolddev/fleetbill/internal/logging"
	"github.com/theirongolddev/fleetbill/internal/metrics"
	"github.com/theirongolddev/fleetbill/internal/model"
	"github.com/theirongolddev/fleetbill/internal/pipeline"
	"github.com/theirongolddev/fleetbill/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagConfig        string
	flagEnvFile       string
	flagStart         string
	flagEnd           string
	flagOperator      string
	flagRate          float64
	flagMetersPerMile float64
	flagFromDir       string
	flagFormat        string
	flagDetail        string
	flagOut           string
	flagAllowNegative bool
	flagMetricsFile   string
	flagQuiet         bool
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "fleetbill",
	Short: "Fleet mileage billing",
	Long: "Fetch a fleet's odometer readings at the start and end of a billing period,\n" +
		"charge per mile driven, and produce an itemized invoice.",
	RunE:          runBill,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
// SIGINT and SIGTERM cancel any in-flight fetches.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "Config file (TOML or YAML; default "+config.Path()+")")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file to load before reading config")
	pf.StringVar(&flagStart, "start", "", "Billing period start (RFC3339)")
	pf.StringVar(&flagEnd, "end", "", "Billing period end (RFC3339)")
	pf.StringVar(&flagOperator, "operator", "", "Operator name printed on the invoice")
	pf.Float64Var(&flagRate, "rate", 0, "Charge per mile")
	pf.Float64Var(&flagMetersPerMile, "meters-per-mile", 0, "Metres per mile")
	pf.StringVarP(&flagFromDir, "from-dir", "d", "", "Read vehicles.json and history snapshots from a directory instead of the API")
	pf.StringVarP(&flagFormat, "format", "f", "", "Output format: json, table, pdf, xlsx")
	pf.StringVar(&flagDetail, "detail", "", "JSON detail layout: items, legacy")
	pf.StringVarP(&flagOut, "out", "o", "", "Write the invoice to this file instead of stdout")
	pf.BoolVar(&flagAllowNegative, "allow-negative", false, "Bill negative distances instead of failing")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus run metrics to this file")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")
}

// runEnv is the shared state of one billing command.
type runEnv struct {
	cfg     config.Config
	log     *zap.Logger
	metrics *metrics.Recorder
}

// loadEnv reads .env and the config file, applies flag overrides, and
// validates the result.
func loadEnv(cmd *cobra.Command) (*runEnv, error) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return nil, err
	}

	path := configPath()
	if flagConfig != "" && !config.Exists(path) {
		return nil, fmt.Errorf("config: %s does not exist", path)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := flagLogLevel
	if level == "" && flagQuiet {
		level = "warn"
	}
	logger, err := logging.NewLogger(level)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return &runEnv{cfg: cfg, log: logger, metrics: metrics.NewRecorder()}, nil
}

// configPath is --config when given, otherwise the default location.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("start") {
		t, err := time.Parse(time.RFC3339, flagStart)
		if err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		cfg.Period.Start = t
	}
	if flags.Changed("end") {
		t, err := time.Parse(time.RFC3339, flagEnd)
		if err != nil {
			return fmt.Errorf("--end: %w", err)
		}
		cfg.Period.End = t
	}
	if flags.Changed("operator") {
		cfg.Operator.Name = flagOperator
	}
	if flags.Changed("rate") {
		cfg.Billing.RatePerMile = flagRate
	}
	if flags.Changed("meters-per-mile") {
		cfg.Billing.MetersPerMile = flagMetersPerMile
	}
	if flags.Changed("allow-negative") {
		cfg.Billing.AllowNegativeDistance = flagAllowNegative
	}
	if flags.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if flags.Changed("detail") {
		cfg.Output.Detail = flagDetail
	}
	return nil
}

func (e *runEnv) period() model.BillingPeriod {
	return model.BillingPeriod{Start: e.cfg.Period.Start, End: e.cfg.Period.End}
}

// newSource returns the directory source when --from-dir is set, otherwise
// the HTTP client.
func (e *runEnv) newSource() (pipeline.Source, error) {
	if flagFromDir != "" {
		return source.NewDir(flagFromDir, e.period())
	}

	baseURL := config.GetBaseURL(e.cfg)
	if baseURL == "" {
		return nil, errors.New("no fleet API configured: set api.base_url, FLEETBILL_API_URL, or use --from-dir")
	}
	return fleetapi.NewClient(baseURL, config.GetAPIKey(e.cfg), e.cfg.API.Timeout())
}

func (e *runEnv) observeFetch(op string, elapsed time.Duration, err error) {
	e.metrics.ObserveFetch(op, elapsed, err)
	if err != nil {
		e.log.Warn("fetch failed", zap.String("op", op), zap.Duration("elapsed", elapsed), zap.Error(err))
		return
	}
	e.log.Debug("fetch complete", zap.String("op", op), zap.Duration("elapsed", elapsed))
}

// acquire fetches the fleet and both period snapshots.
func (e *runEnv) acquire(ctx context.Context) (pipeline.Snapshot, error) {
	src, err := e.newSource()
	if err != nil {
		return pipeline.Snapshot{}, err
	}

	period := e.period()
	e.log.Info("acquiring snapshots",
		zap.Time("start", period.Start),
		zap.Time("end", period.End),
		zap.Bool("offline", flagFromDir != ""))

	snap, err := pipeline.Acquire(ctx, src, period, e.observeFetch)
	if err != nil {
		e.metrics.RecordFailure("acquire")
		return pipeline.Snapshot{}, err
	}
	e.log.Info("snapshots acquired",
		zap.Int("vehicles", len(snap.Fleet)),
		zap.Int("start_records", len(snap.Start)),
		zap.Int("end_records", len(snap.End)))
	return snap, nil
}

// bill runs one full billing cycle and returns the assembled invoice.
func (e *runEnv) bill(ctx context.Context) (model.Invoice, pipeline.Snapshot, error) {
	snap, err := e.acquire(ctx)
	if err != nil {
		return model.Invoice{}, snap, err
	}

	res, err := pipeline.Reconcile(snap, e.cfg.Billing)
	if err != nil {
		e.metrics.RecordFailure("reconcile")
		return model.Invoice{}, snap, err
	}
	for _, it := range res.Items {
		e.log.Debug("Asset:"+it.LicensePlate,
			zap.Float64("distance_m", it.DistanceMeters),
			zap.String("charge", it.Charge.StringFixed(2)))
	}

	inv := invoice.Assemble(invoice.Input{
		Operator: e.cfg.Operator.Name,
		Period:   snap.Period,
		Rates:    e.cfg.Billing,
		Link:     e.cfg.Output.Link,
		Result:   res,
	})
	e.metrics.RecordInvoice(inv)
	e.log.Info("invoice assembled",
		zap.String("id", inv.ID),
		zap.Int("vehicles", len(inv.Items)),
		zap.String("total", inv.Total.StringFixed(2)))
	return inv, snap, nil
}

// finish writes the metrics file when requested and flushes the logger.
func (e *runEnv) finish() {
	if flagMetricsFile != "" {
		if err := e.metrics.WriteFile(flagMetricsFile); err != nil {
			e.log.Warn("writing metrics", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
