package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hanzki/rsu-tax-calculator/internal/calculator"
	"github.com/hanzki/rsu-tax-calculator/internal/model"
	"github.com/hanzki/rsu-tax-calculator/internal/rates"
)

func newAnalyzeCommand(g *globalOptions) *cobra.Command {
	var in inputFlags
	var year int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Describe the input histories before computing a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			// The rate table is optional here.
			loaded, err := s.load(in, in.rates)
			if err != nil {
				return err
			}
			a := calculator.Analyze(loaded.history.Individual, loaded.history.EquityPlan)
			writeAnalysis(cmd.OutOrStdout(), a, loaded.table, year)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "check that the histories cover this year")

	return cmd
}

func writeAnalysis(w io.Writer, a calculator.Analysis, table rates.Table, year int) {
	symbol := a.Symbol
	if symbol == "" {
		symbol = "(none or mixed)"
	}
	fmt.Fprintf(w, "%-22s %s\n", "Symbol:", symbol)
	fmt.Fprintf(w, "%-22s %d\n", "Individual records:", a.Individual)
	fmt.Fprintf(w, "%-22s %d\n", "Equity plan records:", a.EquityPlan)
	if !a.FirstDate.IsZero() {
		fmt.Fprintf(w, "%-22s %s .. %s\n", "Transactions:", model.FormatDate(a.FirstDate), model.FormatDate(a.LastDate))
	}
	if len(table) > 0 {
		first, last := table.Span()
		fmt.Fprintf(w, "%-22s %s .. %s (%d days)\n", "Exchange rates:", model.FormatDate(first), model.FormatDate(last), len(table))
	}
	if year != 0 {
		coverage := "covered"
		if !a.Covers(year) {
			coverage = "not fully covered"
		}
		fmt.Fprintf(w, "%-22s %s\n", fmt.Sprintf("Year %d:", year), coverage)
	}
	if len(a.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range a.Warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
}
