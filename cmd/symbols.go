package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/config"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "search symbols by company name or ticker" }
func (*symbolsCmd) Usage() string {
	return `pft symbols <term>

  Lists the companies whose symbol or name contains the term.

  With the yahoo provider the NIFTY 500 directory is searched. With the
  eodhd provider the EODHD search API is used, it covers every exchange.

`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {}

func (c *symbolsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a search term is required")
		return subcommands.ExitUsageError
	}
	term := strings.Join(f.Args(), " ")
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	items, err := searchSymbols(ctx, cfg, term)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error searching symbols: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderListings(&renderer.Listings{Term: term, Items: items}))
	return subcommands.ExitSuccess
}

// searchSymbols searches the symbols known by the configured provider.
func searchSymbols(ctx context.Context, cfg *config.Config, term string) ([]tracker.Listing, error) {
	if cfg.Provider != config.ProviderEODHD {
		dir, err := loadDirectory(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("cannot load symbol directory: %w", err)
		}
		return dir.Search(term), nil
	}

	results, err := newEODHD(cfg).Search(ctx, term)
	if err != nil {
		return nil, err
	}
	items := make([]tracker.Listing, 0, len(results))
	for _, r := range results {
		items = append(items, tracker.Listing{Symbol: r.Symbol(), Name: r.Name})
	}
	return items, nil
}
