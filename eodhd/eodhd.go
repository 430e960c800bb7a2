// Package eodhd implements a tracker.Gateway on top of the EOD Historical
// Data API.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the EODHD API.
	DefaultBaseURL = "https://eodhd.com/api"

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10
)

// ErrNoAPIKey is returned by every call made without an API key.
var ErrNoAPIKey = errors.New("eodhd: no API key, set EODHD_API_KEY")

// Client is an EODHD API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	today      func() date.Date
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithToday sets the clock used by LatestClose.
func WithToday(today func() date.Date) ClientOption {
	return func(c *Client) { c.today = today }
}

// NewClient creates a new EODHD API client. Responses are cached on disk for
// the day.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: tracker.NewCachingClient(date.Daily),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		today:      date.Today,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ticker converts a gateway symbol into an EODHD ticker:
// "TCS.NS" is "TCS.NSE", "500325.BO" is "500325.BSE" and an index like
// "^NSEI" is "NSEI.INDX".
func Ticker(symbol string) string {
	switch {
	case strings.HasPrefix(symbol, "^"):
		return strings.TrimPrefix(symbol, "^") + ".INDX"
	case strings.HasSuffix(symbol, ".NS"):
		return strings.TrimSuffix(symbol, ".NS") + ".NSE"
	case strings.HasSuffix(symbol, ".BO"):
		return strings.TrimSuffix(symbol, ".BO") + ".BSE"
	default:
		return symbol
	}
}

// get performs a GET request to the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("eodhd rate limiter: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")
	return tracker.GetJSON(ctx, c.httpClient, c.baseURL+path+"?"+params.Encode(), result)
}

// EOD is one daily bar of the /eod endpoint.
type EOD struct {
	Date          date.Date `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        float64   `json:"volume"`
}

// EndOfDay returns the daily bars of ticker in [from, to], boundaries included.
func (c *Client) EndOfDay(ctx context.Context, ticker string, from, to date.Date) ([]EOD, error) {
	// https://eodhd.com/api/eod/TCS.NSE?api_token=demo&fmt=json&from=2025-01-01&to=2025-03-01
	params := url.Values{}
	params.Set("from", from.String())
	params.Set("to", to.String())
	var bars []EOD
	if err := c.get(ctx, "/eod/"+url.PathEscape(ticker), params, &bars); err != nil {
		return nil, err
	}
	return bars, nil
}

// History implements tracker.Gateway.
func (c *Client) History(ctx context.Context, symbol string, from, to date.Date) (*date.History[float64], error) {
	bars, err := c.EndOfDay(ctx, Ticker(symbol), from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", tracker.ErrNotAvailable, symbol, err)
	}
	h := new(date.History[float64])
	for _, bar := range bars {
		if bar.Date.IsZero() || bar.Close <= 0 {
			continue
		}
		h.Append(bar.Date, bar.Close)
	}
	if h.Len() == 0 {
		return nil, fmt.Errorf("%w: no prices for %q in %s..%s", tracker.ErrNotAvailable, symbol, from, to)
	}
	return h, nil
}

// LatestClose implements tracker.Gateway.
func (c *Client) LatestClose(ctx context.Context, symbol string) (float64, bool) {
	return tracker.LatestFromHistory(ctx, c, symbol, c.today())
}

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Country  string `json:"Country"`
	Currency string `json:"Currency"`
	ISIN     string `json:"ISIN"`
}

// Symbol returns the gateway symbol of an NSE or BSE result, or the EODHD
// ticker otherwise.
func (r SearchResult) Symbol() string {
	switch r.Exchange {
	case "NSE":
		return r.Code + ".NS"
	case "BSE":
		return r.Code + ".BO"
	case "INDX":
		return "^" + r.Code
	default:
		return r.Code + "." + r.Exchange
	}
}

// Search searches for securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.get(ctx, "/search/"+url.PathEscape(term), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
