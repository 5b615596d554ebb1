package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hanzki/rsu-tax-calculator/internal/config"
)

func newInitCommand() *cobra.Command {
	var symbol string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default rsutax.yaml and input directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, symbol, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized rsutax project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "ticker of the employer's stock")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")

	return cmd
}

func runInit(dir, symbol string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.Default()
	cfg.Report.Symbol = symbol
	cfg.Inputs.Dir = "input"

	if err := os.MkdirAll(filepath.Join(dir, cfg.Inputs.Dir), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.Inputs.Dir, err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
