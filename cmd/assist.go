package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/agent"
	"github.com/etnz/tracker/config"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct{}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant about your portfolio."
}

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `pft assist [question]

  Start an interactive session with the AI assistant. The question, if any,
  is asked first. The assistant can read the holdings and value the
  portfolio over any timeframe. Requires GEMINI_API_KEY.

`
}

// SetFlags sets the flags for the command.
func (*AssistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := strings.Join(f.Args(), " ")

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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(cfg.Gemini.Model, assistTools(cfg, p))
	trader := agent.NewTrader(cfg.Gemini.Model)
	a := agent.New(stdout, os.Stdin, cfg.Gemini.Model, analyst, trader)
	a.Print = printMarkdownTo

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// assistTools gives the analyst the same reports as the CLI.
func assistTools(cfg *config.Config, p *tracker.Portfolio) *agent.Tools {
	return &agent.Tools{
		Holdings: func(ctx context.Context) (string, error) {
			return renderer.RenderHoldings(renderer.NewHoldings(p, cfg.Currency)), nil
		},
		Valuation: func(ctx context.Context, timeframe string) (string, error) {
			lookback, err := tracker.ParseLookback(timeframe)
			if err != nil {
				return "", err
			}
			v, err := valuate(ctx, cfg, p, cfg.Benchmark, lookback)
			if err != nil {
				return "", err
			}
			return renderer.RenderValuation(v), nil
		},
	}
}
