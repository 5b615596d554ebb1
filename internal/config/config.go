package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hanzki/rsu-tax-calculator/internal/calculator"
	"github.com/hanzki/rsu-tax-calculator/internal/rates"
)

// FileName is the default config file name.
const FileName = "rsutax.yaml"

// Config represents the top-level rsutax.yaml configuration.
type Config struct {
	Report      ReportConfig      `yaml:"report"`
	Inputs      InputsConfig      `yaml:"inputs"`
	Rates       RatesConfig       `yaml:"rates"`
	Calculation CalculationConfig `yaml:"calculation"`
	Log         LogConfig         `yaml:"log"`
}

// ReportConfig controls the report output.
type ReportConfig struct {
	Currency string `yaml:"currency"`
	Symbol   string `yaml:"symbol,omitempty"` // empty accepts any single symbol
}

// InputsConfig locates the history files. Paths are relative to the
// working directory.
type InputsConfig struct {
	Individual string `yaml:"individual,omitempty"`
	EquityPlan string `yaml:"equity_plan,omitempty"`
	Dir        string `yaml:"dir,omitempty"`
}

// RatesConfig locates the ECB rate file.
type RatesConfig struct {
	File         string `yaml:"file"`
	LookbackDays int    `yaml:"lookback_days"`
}

// CalculationConfig tunes the calculator.
type CalculationConfig struct {
	SellToCoverWindowDays int    `yaml:"sell_to_cover_window_days"`
	ESPPDiscount          string `yaml:"espp_discount"`
	MaxOptionCandidates   int    `yaml:"max_option_candidates"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Load reads a rsutax.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Currency: money.EUR,
		},
		Rates: RatesConfig{
			File:         "ecb.csv",
			LookbackDays: rates.DefaultLookbackDays,
		},
		Calculation: CalculationConfig{
			SellToCoverWindowDays: calculator.DefaultSellToCoverWindowDays,
			ESPPDiscount:          calculator.DefaultESPPDiscount.String(),
			MaxOptionCandidates:   calculator.DefaultMaxOptionCandidates,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks field ranges and enumerations.
func (c *Config) Validate() error {
	if money.GetCurrency(c.Report.Currency) == nil {
		return fmt.Errorf("report.currency: unknown currency %q", c.Report.Currency)
	}
	if c.Rates.LookbackDays < 0 {
		return fmt.Errorf("rates.lookback_days must not be negative")
	}
	if c.Calculation.SellToCoverWindowDays < 1 {
		return fmt.Errorf("calculation.sell_to_cover_window_days must be positive")
	}
	if c.Calculation.MaxOptionCandidates < 1 {
		return fmt.Errorf("calculation.max_option_candidates must be positive")
	}
	if _, err := c.discount(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: expected text or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) discount() (decimal.Decimal, error) {
	if c.Calculation.ESPPDiscount == "" {
		return calculator.DefaultESPPDiscount, nil
	}
	d, err := decimal.NewFromString(c.Calculation.ESPPDiscount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculation.espp_discount: %w", err)
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("calculation.espp_discount must be in [0, 1), got %s", d)
	}
	return d, nil
}

// CalculatorOptions returns the calculator options described by c.
func (c *Config) CalculatorOptions() (calculator.Options, error) {
	d, err := c.discount()
	if err != nil {
		return calculator.Options{}, err
	}
	return calculator.Options{
		Symbol:                c.Report.Symbol,
		SellToCoverWindowDays: c.Calculation.SellToCoverWindowDays,
		ESPPDiscount:          decimal.NewNullDecimal(d),
		MaxOptionCandidates:   c.Calculation.MaxOptionCandidates,
	}, nil
}
