package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the latest close of symbols" }
func (*quoteCmd) Usage() string {
	return `pft quote [<symbol>...]

  Prints the latest close of each symbol over the last week, or "n/a" when
  none is available. Without arguments, quotes the benchmark and every holding.

`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	symbols := f.Args()
	if len(symbols) == 0 {
		p, err := tracker.LoadPortfolio(cfg.PortfolioFile, today())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		symbols = append(symbols, cfg.Benchmark)
		for _, h := range p.All() {
			symbols = append(symbols, h.Symbol)
		}
	}

	gw := newGateway(cfg)
	quotes := make([]renderer.Quote, 0, len(symbols))
	for _, s := range symbols {
		price, ok := latestClose(ctx, cfg, gw, s)
		quotes = append(quotes, renderer.Quote{Symbol: s, Price: tracker.M(price, cfg.Currency), OK: ok})
	}
	printMarkdown(renderer.RenderQuotes(quotes))
	return subcommands.ExitSuccess
}
