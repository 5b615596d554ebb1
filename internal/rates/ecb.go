package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// ECB csvdata column names. Other columns are ignored.
const (
	ColTimePeriod = "TIME_PERIOD"
	ColObsValue   = "OBS_VALUE"
)

// ReadECB reads an ECB "csvdata" export of the D.USD.EUR.SP00.A series.
// Rows with an empty OBS_VALUE (days the ECB did not publish) are skipped.
func ReadECB(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ECB header: %w", err)
	}

	colDate, colRate := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColTimePeriod:
			colDate = i
		case ColObsValue:
			colRate = i
		}
	}
	if colDate < 0 || colRate < 0 {
		return nil, fmt.Errorf("ECB header must contain %s and %s", ColTimePeriod, ColObsValue)
	}

	table := Table{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ECB row %d: %w", line, err)
		}
		if len(rec) <= max(colDate, colRate) {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, max(colDate, colRate)+1, len(rec))
		}

		raw := strings.TrimSpace(rec[colRate])
		if raw == "" {
			continue
		}
		d, err := model.ParseDate(strings.TrimSpace(rec[colDate]))
		if err != nil {
			return nil, fmt.Errorf("row %d: malformed date: %w", line, err)
		}
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: malformed exchange rate %q: %w", line, raw, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("row %d: exchange rate must be positive, got %s", line, raw)
		}
		table[model.FormatDate(d)] = rate
	}
	return table, nil
}

// LoadECB reads an ECB csvdata file from disk.
func LoadECB(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rates file: %w", err)
	}
	defer f.Close()

	table, err := ReadECB(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return table, nil
}
