package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
	"github.com/hanzki/rsu-tax-calculator/internal/report"
)

func newReportCommand(g *globalOptions) *cobra.Command {
	var in inputFlags
	var year int
	var output, title string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the capital-gains report as CSV",
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
			rows := report.FilterYear(res.Rows, year)

			if output == "" || output == "-" {
				if err := report.WriteCSV(cmd.OutOrStdout(), rows, title); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			} else {
				if err := writeReportFile(output, rows, title); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), output)
			}

			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "only include sales in this year")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the CSV to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "single-field line written before the header")

	return cmd
}

func writeReportFile(path string, rows []model.TaxSaleOfSecurity, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.WriteCSV(f, rows, title); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}
