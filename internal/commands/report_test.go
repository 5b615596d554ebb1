package commands_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzki/rsu-tax-calculator/internal/config"
)

func testdata(t *testing.T, name string) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	return p
}

func inputArgs(t *testing.T) []string {
	return []string{
		"--individual", testdata(t, "individual.json"),
		"--equity", testdata(t, "equity.json"),
		"--rates", testdata(t, "ecb.csv"),
	}
}

func readReport(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestReport_WritesCSV(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.csv")
	out, err := runRsutax(t, append([]string{"report", "--output", output}, inputArgs(t)...)...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote 3 rows")
	assert.Contains(t, out, "warning: [split-sale-fees] 2023-09-01")

	records := readReport(t, output)
	require.Len(t, records, 4, "header + 3 rows")
	assert.Equal(t, "account", records[0][0])

	// account, ..., capitalGainEUR
	assert.Equal(t, []string{"Individual", "U", "2023-03-01", "2023-09-01", "10"}, records[1][:5])
	assert.Equal(t, "159.92", records[1][10])
	assert.Equal(t, []string{"Individual", "U", "2023-07-01", "2023-09-01", "5"}, records[2][:5])
	assert.Equal(t, "39.92", records[2][10])
	assert.Equal(t, []string{"EAC", "U", "2023-06-30", "2023-10-02", "8"}, records[3][:5])
	assert.Equal(t, "54.40", records[3][10])
	for _, rec := range records[1:] {
		assert.Equal(t, "0.00", rec[9], "no losses")
		assert.Equal(t, "0.800000", rec[16])
	}
}

func TestReport_YearFilterAndTitle(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.csv")
	args := append([]string{"report", "--year", "2022", "--title", "Sales 2022", "-o", output}, inputArgs(t)...)
	out, err := runRsutax(t, args...)
	require.NoError(t, err, out)

	records := readReport(t, output)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Sales 2022"}, records[0])
	assert.Equal(t, "account", records[1][0])
}

func TestReport_FromConfig(t *testing.T) {
	dir := t.TempDir()
	inputDir := filepath.Join(dir, "input")
	require.NoError(t, os.MkdirAll(inputDir, 0o755))
	for _, name := range []string{"individual.json", "equity.json"} {
		data, err := os.ReadFile(testdata(t, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(inputDir, name), data, 0o644))
	}

	cfg := config.Default()
	cfg.Report.Symbol = "U"
	cfg.Inputs.Dir = "input"
	cfg.Rates.File = testdata(t, "ecb.csv")
	cfg.Log.Level = "error"
	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(cfgPath, cfg))

	output := filepath.Join(dir, "report.csv")
	out, err := runRsutax(t, "report", "--config", cfgPath, "-o", output)
	require.NoError(t, err, out)
	assert.Len(t, readReport(t, output), 4)
}

func TestReport_UnsupportedSymbol(t *testing.T) {
	out, err := runRsutax(t, append([]string{"report", "--symbol", "MSFT"}, inputArgs(t)...)...)
	require.Error(t, err)
	assert.Contains(t, out, `unsupported symbol "U"`)
}

func TestReport_MissingRateFile(t *testing.T) {
	out, err := runRsutax(t, "report",
		"--individual", testdata(t, "individual.json"),
		"--equity", testdata(t, "equity.json"),
		"--rates", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, out, "missing.csv")
}

func TestReport_MissingConfig(t *testing.T) {
	out, err := runRsutax(t, append([]string{"report", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, inputArgs(t)...)...)
	require.Error(t, err, "an explicit config path must exist")
	assert.Contains(t, out, "reading config")
}

func TestSummary(t *testing.T) {
	out, err := runRsutax(t, append([]string{"summary", "--log-level", "error"}, inputArgs(t)...)...)
	require.NoError(t, err, out)

	assert.Contains(t, out, "2023 (3 rows)")
	assert.Contains(t, out, "Shares sold")
	// 159.92 + 39.92 + 54.40
	assert.Contains(t, out, "€254.24")
	assert.True(t, strings.Contains(out, "Capital losses"))
}

func TestAnalyze(t *testing.T) {
	out, err := runRsutax(t, "analyze",
		"--individual", testdata(t, "individual.json"),
		"--equity", testdata(t, "equity.json"),
		"--rates", testdata(t, "ecb.csv"),
		"--year", "2023")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Symbol:")
	assert.Contains(t, out, "U")
	assert.Contains(t, out, "2023-02-15 .. 2023-10-02")
	assert.Contains(t, out, "Exchange rates:")
	assert.Contains(t, out, "Year 2023:")
	assert.Contains(t, out, "not fully covered")
	assert.Contains(t, out, "[split-sale-fees]")
}

func TestAnalyze_RequiresHistory(t *testing.T) {
	out, err := runRsutax(t, "analyze", "--input", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "no history files")
}
