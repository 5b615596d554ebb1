package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hanzki/rsu-tax-calculator/internal/calculator"
	"github.com/hanzki/rsu-tax-calculator/internal/config"
	"github.com/hanzki/rsu-tax-calculator/internal/importer"
	"github.com/hanzki/rsu-tax-calculator/internal/logging"
	"github.com/hanzki/rsu-tax-calculator/internal/rates"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// inputFlags override the inputs section of the config. When any of the
// history flags is set the configured history paths are ignored.
type inputFlags struct {
	individual string
	equity     string
	dir        string
	rates      string
	symbol     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.individual, "individual", "", "individual account history (individual-json)")
	cmd.Flags().StringVar(&f.equity, "equity", "", "equity plan history (equity-json)")
	cmd.Flags().StringVar(&f.dir, "input", "", "directory scanned for history files")
	cmd.Flags().StringVar(&f.rates, "rates", "", "ECB USD/EUR rate file (csvdata)")
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "override the configured symbol")
}

func (f *inputFlags) hasHistory() bool {
	return f.individual != "" || f.equity != "" || f.dir != ""
}

// session is the resolved config and logger of one command run.
type session struct {
	cfg  *config.Config
	base string // directory config paths are relative to
	log  *slog.Logger
}

func openSession(cmd *cobra.Command, g *globalOptions) (*session, error) {
	cfg, err := config.Load(g.configPath)
	base := filepath.Dir(g.configPath)
	if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg, base, err = config.Default(), ".", nil
	}
	if err != nil {
		return nil, err
	}

	levelName := cfg.Log.Level
	if g.logLevel != "" {
		levelName = g.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:  cfg,
		base: base,
		log:  logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format),
	}, nil
}

func (s *session) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.base, p)
}

type historyFile struct {
	path   string
	format string // empty detects the format from the file
}

func (s *session) historyFiles(f inputFlags) ([]historyFile, error) {
	individual, equity, dir := f.individual, f.equity, f.dir
	if !f.hasHistory() {
		individual = s.resolve(s.cfg.Inputs.Individual)
		equity = s.resolve(s.cfg.Inputs.EquityPlan)
		dir = s.resolve(s.cfg.Inputs.Dir)
	}

	var files []historyFile
	if individual != "" {
		files = append(files, historyFile{path: individual, format: importer.FormatIndividual})
	}
	if equity != "" {
		files = append(files, historyFile{path: equity, format: importer.FormatEquityPlan})
	}
	if dir != "" {
		found, err := importer.Scan(dir)
		if err != nil {
			return nil, err
		}
		for _, fi := range found {
			files = append(files, historyFile{path: fi.Path, format: fi.Format})
		}
	}

	files = lo.UniqBy(files, func(h historyFile) string {
		abs, err := filepath.Abs(h.path)
		if err != nil {
			return h.path
		}
		return abs
	})
	if len(files) == 0 {
		return nil, fmt.Errorf("no history files: set --individual, --equity or --input")
	}
	return files, nil
}

func (s *session) ratesPath(f inputFlags) string {
	if f.rates != "" {
		return f.rates
	}
	return s.resolve(s.cfg.Rates.File)
}

// inputs is everything one computation reads from disk.
type inputs struct {
	history importer.History
	table   rates.Table // nil when no rate file was requested
}

// load reads the history files and, when ratesPath is not empty, the rate
// table. Files are read concurrently.
func (s *session) load(f inputFlags, ratesPath string) (*inputs, error) {
	files, err := s.historyFiles(f)
	if err != nil {
		return nil, err
	}

	registry := importer.DefaultRegistry()
	histories := make([]importer.History, len(files))
	var table rates.Table

	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			h, err := registry.Load(file.path, file.format)
			if err != nil {
				return err
			}
			histories[i] = h
			return nil
		})
	}
	if ratesPath != "" {
		g.Go(func() error {
			t, err := rates.LoadECB(ratesPath)
			if err != nil {
				return err
			}
			table = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in := &inputs{table: table}
	for _, h := range histories {
		in.history.Merge(h)
	}
	s.log.Debug("loaded inputs",
		"files", len(files),
		"individual", len(in.history.Individual),
		"equity", len(in.history.EquityPlan),
		"rates", len(table))
	return in, nil
}

// calculate loads the inputs and runs the calculator over them.
func (s *session) calculate(f inputFlags) (*calculator.Result, error) {
	ratesPath := s.ratesPath(f)
	if ratesPath == "" {
		return nil, fmt.Errorf("no rate file: set --rates or rates.file")
	}
	in, err := s.load(f, ratesPath)
	if err != nil {
		return nil, err
	}

	opts, err := s.cfg.CalculatorOptions()
	if err != nil {
		return nil, err
	}
	if f.symbol != "" {
		opts.Symbol = f.symbol
	}

	conv := rates.NewConverter(in.table, s.cfg.Rates.LookbackDays)
	return calculator.New(opts, s.log).Calculate(in.history.Individual, in.history.EquityPlan, conv)
}

func printWarnings(w io.Writer, warnings []calculator.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}
