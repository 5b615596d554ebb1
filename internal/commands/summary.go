package commands

import (
	"github.com/spf13/cobra"

	"github.com/hanzki/rsu-tax-calculator/internal/report"
)

func newSummaryCommand(g *globalOptions) *cobra.Command {
	var in inputFlags
	var year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print yearly totals of the capital-gains report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			res, err := s.calculate(in)
			if err != nil {
				return err
			}

			summaries := report.Summarize(report.FilterYear(res.Rows, year))
			if err := report.WriteSummaries(cmd.OutOrStdout(), summaries, s.cfg.Report.Currency); err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "only summarise this year")

	return cmd
}
