// Package calculator reconciles a brokerage history with its equity-plan
// history and produces the capital-gains report.
package calculator

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/hanzki/rsu-tax-calculator/internal/model"
)

// Options tunes the computation. Non-positive window and candidate
// counts and an unset (invalid) ESPP discount fall back to the defaults;
// a valid zero discount is kept.
type Options struct {
	Symbol                string
	SellToCoverWindowDays int
	ESPPDiscount          decimal.NullDecimal
	MaxOptionCandidates   int
}

// DefaultOptions returns the options used when no config overrides them.
func DefaultOptions() Options {
	return Options{
		SellToCoverWindowDays: DefaultSellToCoverWindowDays,
		ESPPDiscount:          decimal.NewNullDecimal(DefaultESPPDiscount),
		MaxOptionCandidates:   DefaultMaxOptionCandidates,
	}
}

// Result is the output of one computation.
type Result struct {
	Symbol      string
	Rows        []model.TaxSaleOfSecurity
	OptionSales []OptionSale
	Warnings    []Warning
}

// Calculator runs the pipeline. It holds no state between runs and is
// safe for concurrent use.
type Calculator struct {
	opts Options
	log  *slog.Logger
}

// New returns a Calculator. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Calculator {
	def := DefaultOptions()
	if opts.SellToCoverWindowDays <= 0 {
		opts.SellToCoverWindowDays = def.SellToCoverWindowDays
	}
	if !opts.ESPPDiscount.Valid {
		opts.ESPPDiscount = def.ESPPDiscount
	}
	if opts.MaxOptionCandidates <= 0 {
		opts.MaxOptionCandidates = def.MaxOptionCandidates
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Calculator{opts: opts, log: logger}
}

// Calculate builds the report for individual and equity. It fails on the
// first error; no partial report is returned.
func (c *Calculator) Calculate(individual []model.Individual, equity []model.EquityPlan, conv Converter) (*Result, error) {
	symbol, err := CheckSymbol(individual, equity, c.opts.Symbol)
	if err != nil {
		return nil, err
	}
	res := &Result{Symbol: symbol}

	moves := FilterStockTransactions(individual)
	c.log.Debug("classified transactions", "individual", len(individual), "stock", len(moves))

	for _, t := range InboundTransfers(moves) {
		c.log.Warn("ignoring inbound security transfer", "date", model.FormatDate(t.Date), "quantity", t.Quantity)
		res.Warnings = append(res.Warnings, Warning{
			Kind:    WarnInboundTransfer,
			Date:    t.Date,
			Message: fmt.Sprintf("inbound transfer of %d shares has no known cost basis and is ignored", t.Quantity),
		})
	}

	moves, res.OptionSales, err = ReconcileOptionSales(moves, equity, c.opts.MaxOptionCandidates)
	if err != nil {
		return nil, fmt.Errorf("reconciling option sales: %w", err)
	}
	c.log.Debug("reconciled option sales", "pairs", len(res.OptionSales))

	lots, lotWarnings, err := BuildLots(Vestings(moves), equity, c.opts.SellToCoverWindowDays)
	if err != nil {
		return nil, fmt.Errorf("building lots: %w", err)
	}
	res.Warnings = append(res.Warnings, lotWarnings...)
	c.log.Debug("built lots", "lots", len(lots))

	disposals, err := CalculateCostBases(moves, lots)
	if err != nil {
		return nil, fmt.Errorf("matching sales to lots: %w", err)
	}

	esppLots := BuildESPPLots(equity, c.opts.ESPPDiscount.Decimal)
	esppDisposals, err := CalculateESPPCostBases(equity, esppLots)
	if err != nil {
		return nil, fmt.Errorf("matching ESPP sales to lots: %w", err)
	}
	c.log.Debug("matched disposals", "regular", len(disposals), "espp", len(esppDisposals), "esppLots", len(esppLots))

	all := append(disposals, esppDisposals...)
	res.Rows, err = BuildReport(all, conv)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}
	res.Warnings = append(res.Warnings, splitFeeWarnings(all)...)

	c.log.Info("calculated report", "symbol", symbol, "rows", len(res.Rows), "warnings", len(res.Warnings))
	return res, nil
}

// splitFeeWarnings flags every sale with fees that was split across lots.
func splitFeeWarnings(disposals []Disposal) []Warning {
	var warnings []Warning
	for _, d := range lo.UniqBy(disposals, func(d Disposal) any { return d.Source }) {
		if d.SaleFeesUSD.IsZero() || d.Quantity == d.SaleQuantity {
			continue
		}
		fragments := lo.CountBy(disposals, func(o Disposal) bool { return o.Source == d.Source })
		warnings = append(warnings, Warning{
			Kind: WarnSplitSaleFees,
			Date: d.SaleDate,
			Message: fmt.Sprintf("sale of %d shares with %s USD fees spans %d lots; the fee is deducted on each row",
				d.SaleQuantity, d.SaleFeesUSD.StringFixed(2), fragments),
		})
	}
	return warnings
}
