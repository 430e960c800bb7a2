// Package config loads the pft settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/etnz/tracker"
	"gopkg.in/yaml.v3"
)

// Supported market data providers.
const (
	ProviderYahoo = "yahoo"
	ProviderEODHD = "eodhd"
)

// Config is the top-level configuration of pft.
type Config struct {
	PortfolioFile string        `yaml:"portfolio_file"`
	Benchmark     string        `yaml:"benchmark"`
	Currency      string        `yaml:"currency"`
	Provider      string        `yaml:"provider"`
	EODHD         EODHD         `yaml:"eodhd"`
	Alignment     string        `yaml:"alignment"`
	Concurrency   int           `yaml:"concurrency"`
	Timeout       time.Duration `yaml:"timeout"`
	SymbolsURL    string        `yaml:"symbols_url"`
	Gemini        Gemini        `yaml:"gemini"`
}

// EODHD holds credentials and limits for the EOD Historical Data API.
type EODHD struct {
	APIKey    string `yaml:"api_key"`
	RateLimit int    `yaml:"rate_limit"`
	BaseURL   string `yaml:"base_url"` // empty for eodhd.DefaultBaseURL
}

// Gemini configures the assist command.
type Gemini struct {
	Model string `yaml:"model"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		PortfolioFile: "portfolio.jsonl",
		Benchmark:     "^NSEI",
		Currency:      "INR",
		Provider:      ProviderYahoo,
		EODHD:         EODHD{RateLimit: 10},
		Alignment:     tracker.AlignForwardFill.String(),
		Concurrency:   tracker.DefaultConcurrency,
		Timeout:       tracker.DefaultTimeout,
		SymbolsURL:    tracker.Nifty500URL,
		Gemini:        Gemini{Model: "gemini-2.5-flash"},
	}
}

// Load reads the YAML configuration file at the given path on top of the
// defaults, and then applies environment variable overrides. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, cfg.Validate()
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PFT_PORTFOLIO_FILE"); v != "" {
		cfg.PortfolioFile = v
	}
	if v := os.Getenv("PFT_BENCHMARK"); v != "" {
		cfg.Benchmark = v
	}
	if v := os.Getenv("PFT_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	if v := os.Getenv("PFT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("PFT_ALIGNMENT"); v != "" {
		cfg.Alignment = v
	}
	if v := os.Getenv("PFT_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.EODHD.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.PortfolioFile == "" {
		errs = append(errs, errors.New("portfolio_file is empty"))
	}
	if c.Benchmark == "" {
		errs = append(errs, errors.New("benchmark is empty"))
	}
	if c.Currency == "" {
		errs = append(errs, errors.New("currency is empty"))
	}
	switch c.Provider {
	case ProviderYahoo:
	case ProviderEODHD:
		if c.EODHD.APIKey == "" {
			errs = append(errs, errors.New("provider eodhd requires eodhd.api_key or EODHD_API_KEY"))
		}
		if c.EODHD.RateLimit <= 0 {
			errs = append(errs, fmt.Errorf("eodhd.rate_limit must be positive, got %d", c.EODHD.RateLimit))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q, want %s or %s", c.Provider, ProviderYahoo, ProviderEODHD))
	}
	if _, err := tracker.ParseAlignment(c.Alignment); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency <= 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.Timeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AlignmentPolicy returns the parsed alignment, Validate guarantees it is valid.
func (c *Config) AlignmentPolicy() tracker.Alignment {
	a, _ := tracker.ParseAlignment(c.Alignment)
	return a
}
