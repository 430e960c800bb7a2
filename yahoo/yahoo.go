// Package yahoo implements a tracker.Gateway on top of the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// DefaultBaseURL is the Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// Client fetches daily closes from Yahoo Finance.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Today   func() date.Date
}

// New returns a Client using a daily disk cache.
func New() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		HTTP:    tracker.NewCachingClient(date.Daily),
		Today:   date.Today,
	}
}

// History implements tracker.Gateway.
func (c *Client) History(ctx context.Context, symbol string, from, to date.Date) (*date.History[float64], error) {
	params := url.Values{}
	params.Set("period1", fmt.Sprint(from.Time().Unix()))
	params.Set("period2", fmt.Sprint(to.Add(1).Time().Unix()))
	params.Set("interval", "1d")
	addr := c.BaseURL + url.PathEscape(symbol) + "?" + params.Encode()

	var jobj any
	if err := tracker.GetJSON(ctx, c.HTTP, addr, &jobj); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", tracker.ErrNotAvailable, symbol, err)
	}
	h, err := parseChart(jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", tracker.ErrNotAvailable, symbol, err)
	}

	// Yahoo rounds the period to trading sessions, it may answer outside the range.
	res := new(date.History[float64])
	r := date.Range{From: from, To: to}
	for day, v := range h.Values() {
		if r.Contains(day) {
			res.Append(day, v)
		}
	}
	if res.Len() == 0 {
		return nil, fmt.Errorf("%w: no prices for %q in %s", tracker.ErrNotAvailable, symbol, r)
	}
	return res, nil
}

// LatestClose implements tracker.Gateway.
func (c *Client) LatestClose(ctx context.Context, symbol string) (float64, bool) {
	return tracker.LatestFromHistory(ctx, c, symbol, c.Today())
}

/*
	{
	  "chart": {
	    "result": [{
	        "meta": {"currency": "INR", "symbol": "TCS.NS", "gmtoffset": 19800, ...},
	        "timestamp": [1741578300, 1741664700],
	        "indicators": {"quote": [{"close": [3540.1, null], "open": [...], ...}]}
	    }],
	    "error": null
	  }
	}
*/
func parseChart(jobj any) (*date.History[float64], error) {
	const (
		timestampPath = "$.chart.result[0].timestamp"
		closePath     = "$.chart.result[0].indicators.quote[0].close"
		offsetPath    = "$.chart.result[0].meta.gmtoffset"
	)
	timestamps, err := list(timestampPath, jobj)
	if err != nil {
		return nil, err
	}
	closes, err := list(closePath, jobj)
	if err != nil {
		return nil, err
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("%d timestamps for %d closes", len(timestamps), len(closes))
	}
	// the offset moves session timestamps to the exchange local day.
	var offset float64
	if jval, err := jsonpath.Get(offsetPath, jobj); err == nil {
		offset, _ = jval.(float64)
	}

	h := new(date.History[float64])
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("invalid timestamp %v", jts)
		}
		// null closes are sessions without trades.
		price, ok := closes[i].(float64)
		if !ok {
			continue
		}
		day := date.Of(time.Unix(int64(ts+offset), 0).UTC())
		h.Append(day, price)
	}
	return h, nil
}

func list(path string, jobj any) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: not a list %v", path, jval)
	}
	return jlist, nil
}
