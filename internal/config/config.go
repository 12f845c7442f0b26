// Package config loads and saves fleetbill configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envConfigPath = "FLEETBILL_CONFIG"
	envAPIKey     = "FLEETBILL_API_KEY"
	envBaseURL    = "FLEETBILL_API_URL"
)

// Config holds all fleetbill configuration.
type Config struct {
	Operator   OperatorConfig   `toml:"operator" yaml:"operator"`
	Period     PeriodConfig     `toml:"period" yaml:"period"`
	Billing    Rates            `toml:"billing" yaml:"billing"`
	API        APIConfig        `toml:"api" yaml:"api"`
	Output     OutputConfig     `toml:"output" yaml:"output"`
	Appearance AppearanceConfig `toml:"appearance" yaml:"appearance"`
}

// OperatorConfig names the billed operator.
type OperatorConfig struct {
	Name string `toml:"name" yaml:"name"`
}

// PeriodConfig holds the billing cycle boundaries.
type PeriodConfig struct {
	Start time.Time `toml:"start" yaml:"start"`
	End   time.Time `toml:"end" yaml:"end"`
}

// APIConfig holds fleet telemetry API settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey         string `toml:"api_key,omitempty" yaml:"api_key,omitempty"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the per-request timeout.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// OutputConfig controls how the invoice is rendered.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // json, table, pdf, xlsx
	Detail string `toml:"detail" yaml:"detail"` // items, legacy
	Link   string `toml:"link" yaml:"link"`
}

// AppearanceConfig holds terminal display preferences.
type AppearanceConfig struct {
	Theme string `toml:"theme" yaml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Operator: OperatorConfig{Name: "Bob's Taxis"},
		Period: PeriodConfig{
			Start: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2021, 2, 28, 23, 59, 0, 0, time.UTC),
		},
		Billing: DefaultRates(),
		API: APIConfig{
			TimeoutSeconds: 10,
		},
		Output: OutputConfig{
			Format: "json",
			Detail: "items",
			Link:   "http://www.zetiorg.com",
		},
		Appearance: AppearanceConfig{Theme: "flexoki-dark"},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fleetbill")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fleetbill")
}

// Path returns the full path to the config file.
// FLEETBILL_CONFIG overrides the default location.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// LoadFile reads a TOML or YAML config file, returning defaults if it doesn't exist.
// The format is chosen by extension; anything other than .yaml/.yml is TOML.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if isYAML(path) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveFile writes the config to path, as YAML for .yaml/.yml and TOML otherwise,
// so that LoadFile reads it back.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("writing config %s: %w", path, err)
		}
		return enc.Close()
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDotEnv loads environment variables from the given .env files
// (or ./.env when none are given). Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// GetAPIKey returns the API key from env var or config, in that order.
func GetAPIKey(cfg Config) string {
	if key := os.Getenv(envAPIKey); key != "" {
		return key
	}
	return cfg.API.APIKey
}

// GetBaseURL returns the API base URL from env var or config, in that order.
func GetBaseURL(cfg Config) string {
	if u := os.Getenv(envBaseURL); u != "" {
		return u
	}
	return cfg.API.BaseURL
}

// Validate checks the settings a billing run depends on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Operator.Name) == "" {
		return errors.New("config: operator name is required")
	}
	if c.Period.Start.IsZero() || c.Period.End.IsZero() {
		return errors.New("config: billing period start and end are required")
	}
	if !c.Period.End.After(c.Period.Start) {
		return fmt.Errorf("config: period end %s is not after start %s",
			c.Period.End.Format(time.RFC3339), c.Period.Start.Format(time.RFC3339))
	}
	if err := c.Billing.Validate(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "json", "table", "pdf", "xlsx":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	switch c.Output.Detail {
	case "items", "legacy":
	default:
		return fmt.Errorf("config: unknown detail layout %q", c.Output.Detail)
	}
	return nil
}
