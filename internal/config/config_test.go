package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Report.Symbol = "U"
	cfg.Inputs = InputsConfig{Individual: "individual.json", EquityPlan: "equity.json"}
	cfg.Calculation.ESPPDiscount = "0.15"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "EUR", cfg.Report.Currency)
	assert.Empty(t, cfg.Report.Symbol)
	assert.Equal(t, "ecb.csv", cfg.Rates.File)
	assert.Equal(t, 3, cfg.Rates.LookbackDays)
	assert.Equal(t, 7, cfg.Calculation.SellToCoverWindowDays)
	assert.Equal(t, "0.1", cfg.Calculation.ESPPDiscount)
	assert.Equal(t, 16, cfg.Calculation.MaxOptionCandidates)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("report:\n  symbol: U\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "U", cfg.Report.Symbol)
	assert.Equal(t, "EUR", cfg.Report.Currency)
	assert.Equal(t, 3, cfg.Rates.LookbackDays)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown currency", func(c *Config) { c.Report.Currency = "ZZZ" }, "unknown currency"},
		{"negative lookback", func(c *Config) { c.Rates.LookbackDays = -1 }, "lookback_days"},
		{"negative window", func(c *Config) { c.Calculation.SellToCoverWindowDays = -1 }, "sell_to_cover_window_days"},
		{"zero window", func(c *Config) { c.Calculation.SellToCoverWindowDays = 0 }, "sell_to_cover_window_days must be positive"},
		{"negative candidates", func(c *Config) { c.Calculation.MaxOptionCandidates = -1 }, "max_option_candidates"},
		{"zero candidates", func(c *Config) { c.Calculation.MaxOptionCandidates = 0 }, "max_option_candidates must be positive"},
		{"bad discount", func(c *Config) { c.Calculation.ESPPDiscount = "ten" }, "espp_discount"},
		{"discount out of range", func(c *Config) { c.Calculation.ESPPDiscount = "1.5" }, "must be in [0, 1)"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestCalculatorOptions(t *testing.T) {
	cfg := Default()
	cfg.Report.Symbol = "U"
	cfg.Calculation.ESPPDiscount = "0.15"

	opts, err := cfg.CalculatorOptions()
	require.NoError(t, err)
	assert.Equal(t, "U", opts.Symbol)
	require.True(t, opts.ESPPDiscount.Valid)
	assert.Equal(t, "0.15", opts.ESPPDiscount.Decimal.String())
	assert.Equal(t, 7, opts.SellToCoverWindowDays)
	assert.Equal(t, 16, opts.MaxOptionCandidates)
}

func TestCalculatorOptions_ZeroDiscount(t *testing.T) {
	cfg := Default()
	cfg.Calculation.ESPPDiscount = "0"
	require.NoError(t, cfg.Validate())

	opts, err := cfg.CalculatorOptions()
	require.NoError(t, err)
	require.True(t, opts.ESPPDiscount.Valid, "an explicit zero discount is set, not absent")
	assert.True(t, opts.ESPPDiscount.Decimal.IsZero())
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: EUR")
	assert.Contains(t, contents, "lookback_days: 3")
	assert.Contains(t, contents, "sell_to_cover_window_days: 7")
	assert.Contains(t, contents, "format: text")
	assert.NotContains(t, contents, "symbol:")
}
