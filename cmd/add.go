package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	symbol   string
	name     string
	quantity int64
	price    string
	date     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a holding to the portfolio" }
func (*addCmd) Usage() string {
	return `pft add -s <symbol|company> -q <quantity> [-p <price>] [-d <date>] [-n <name>]

  Appends a holding to the portfolio file.

  The symbol is either a gateway symbol like "TCS.NS" or "^NSEI", or a bare
  NSE symbol or company name resolved through the NIFTY 500 directory.
  The buy price defaults to the latest close, the buy date to today.

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol or company name")
	f.StringVar(&c.name, "n", "", "display name, defaults to the company name or the symbol")
	f.Int64Var(&c.quantity, "q", 0, "number of shares")
	f.StringVar(&c.price, "p", "", "buy price per share, defaults to the latest close")
	f.StringVar(&c.date, "d", "", "buy date, defaults to today. See the user manual for supported date formats.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.symbol) == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	buyDate := today()
	if c.date != "" {
		d, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		buyDate = d
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	symbol, name := strings.TrimSpace(c.symbol), c.name
	if !strings.ContainsAny(symbol, ".^") {
		dir, err := loadDirectory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading symbol directory: %v\n", err)
			return subcommands.ExitFailure
		}
		l, err := dir.Resolve(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v, see 'pft symbols'\n", err)
			return subcommands.ExitFailure
		}
		symbol = l.Symbol
		if name == "" {
			name = l.Name
		}
	}

	var price decimal.Decimal
	if c.price != "" {
		price, err = decimal.NewFromString(c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
			return subcommands.ExitUsageError
		}
	} else {
		last, ok := latestClose(ctx, cfg, newGateway(cfg), symbol)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no latest close for %s, use -p to set the buy price\n", symbol)
			return subcommands.ExitFailure
		}
		price = decimal.NewFromFloat(last)
	}

	p, err := tracker.LoadPortfolio(cfg.PortfolioFile, today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	h := tracker.NewHolding(symbol, name, c.quantity, price, buyDate)
	if err := p.Append(today(), h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := tracker.SavePortfolio(cfg.PortfolioFile, p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Added %d %s at %s on %s.\n", h.Quantity, h.Symbol, tracker.M(h.BuyPrice, cfg.Currency), h.BuyDate)
	return subcommands.ExitSuccess
}
