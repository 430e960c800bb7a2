package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/config"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// EmptyPortfolioMessage is printed by commands that need at least one holding.
const EmptyPortfolioMessage = "Add a stock to start tracking your portfolio."

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	timeframe string
	benchmark string
	json      bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the portfolio and compare it to the benchmark" }
func (*valueCmd) Usage() string {
	return `pft value [-t 5D|1M|6M|1Y|3Y] [-b <benchmark>] [-json]

  Values every holding over the timeframe and compares the portfolio to the
  benchmark: key figures, daily comparison series, holdings table, and top
  gainers and losers of the day.

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "t", tracker.FiveDays.String(), "timeframe: 5D, 1M, 6M, 1Y or 3Y")
	f.StringVar(&c.benchmark, "b", "", "benchmark symbol, defaults to the configured one")
	f.BoolVar(&c.json, "json", false, "print the valuation as JSON")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lookback, err := tracker.ParseLookback(c.timeframe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := tracker.LoadPortfolio(cfg.PortfolioFile, today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if p.IsEmpty() {
		fmt.Fprintln(stdout, EmptyPortfolioMessage)
		return subcommands.ExitSuccess
	}
	benchmark := cfg.Benchmark
	if c.benchmark != "" {
		benchmark = c.benchmark
	}

	v, err := valuate(ctx, cfg, p, benchmark, lookback)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding valuation: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderValuation(v))
	return subcommands.ExitSuccess
}

// valuate computes the dashboard view of p.
func valuate(ctx context.Context, cfg *config.Config, p *tracker.Portfolio, benchmark string, lookback tracker.Lookback) (*renderer.Valuation, error) {
	v, err := newEngine(cfg).Compute(ctx, p.Holdings(), benchmark, lookback)
	if err != nil {
		return nil, err
	}
	return renderer.NewValuation(v), nil
}
