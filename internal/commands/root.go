package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanzki/rsu-tax-calculator/internal/buildinfo"
	"github.com/hanzki/rsu-tax-calculator/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:     "rsutax",
		Short:   "Capital-gains report for RSU, option and ESPP sales",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to the config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReportCommand(&opts))
	rootCmd.AddCommand(newSummaryCommand(&opts))
	rootCmd.AddCommand(newAnalyzeCommand(&opts))

	return rootCmd
}
