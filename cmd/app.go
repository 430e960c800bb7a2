// Package cmd implements the pft CLI application to track a stock portfolio
// against a benchmark.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/config"
	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/eodhd"
	"github.com/etnz/tracker/yahoo"
	"github.com/google/subcommands"
	"golang.org/x/term"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "portfolio")
	c.Register(&clearCmd{}, "portfolio")
	c.Register(&holdingsCmd{}, "portfolio")

	c.Register(&valueCmd{}, "reports")
	c.Register(&quoteCmd{}, "reports")
	c.Register(&AssistCmd{}, "reports")

	c.Register(&symbolsCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "tracker.yaml", "Path to the YAML configuration file (optional)")
var Verbose = flag.Bool("v", false, "log HTTP calls and warnings to stderr")

// stdout is where reports are printed.
var stdout io.Writer = os.Stdout

// today is the reference date for buy dates and valuation windows.
var today = date.Today

// newGateway returns the market data gateway selected by the configuration.
var newGateway = func(cfg *config.Config) tracker.Gateway {
	switch cfg.Provider {
	case config.ProviderEODHD:
		return newEODHD(cfg)
	default:
		c := yahoo.New()
		c.Today = today
		return c
	}
}

// newEODHD returns the EODHD client configured by cfg.
func newEODHD(cfg *config.Config) *eodhd.Client {
	opts := []eodhd.ClientOption{eodhd.WithRateLimit(cfg.EODHD.RateLimit), eodhd.WithToday(today)}
	if cfg.EODHD.BaseURL != "" {
		opts = append(opts, eodhd.WithBaseURL(cfg.EODHD.BaseURL))
	}
	return eodhd.NewClient(cfg.EODHD.APIKey, opts...)
}

// latestClose is gw.LatestClose bounded by the configured fetch timeout.
func latestClose(ctx context.Context, cfg *config.Config, gw tracker.Gateway, symbol string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	return gw.LatestClose(ctx, symbol)
}

// Setup applies global flags, it is called once flags are parsed.
func Setup() {
	if !*Verbose {
		log.SetOutput(io.Discard)
	}
}

// loadConfig loads the configuration file and the environment.
func loadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// newEngine returns a valuation engine configured by cfg.
func newEngine(cfg *config.Config) *tracker.Engine {
	e := tracker.NewEngine(newGateway(cfg), cfg.Currency)
	e.Alignment = cfg.AlignmentPolicy()
	e.Concurrency = cfg.Concurrency
	e.Timeout = cfg.Timeout
	e.Today = today
	return e
}

// loadDirectory downloads the symbol directory, cached for the month.
var loadDirectory = func(ctx context.Context, cfg *config.Config) (*tracker.Directory, error) {
	return tracker.FetchDirectory(ctx, tracker.NewCachingClient(date.Monthly), cfg.SymbolsURL)
}

// printMarkdown prints md, rendered for the terminal when stdout is one.
func printMarkdown(md string) {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stdout, md)
		return
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 120
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// printMarkdownTo is printMarkdown for agent answers.
func printMarkdownTo(w io.Writer, md string) {
	if w == stdout {
		printMarkdown(md + "\n")
		return
	}
	fmt.Fprintln(w, md)
}
