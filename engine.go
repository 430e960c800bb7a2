package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/etnz/tracker/date"
	"golang.org/x/sync/errgroup"
)

// Alignment decides how a holding's price series is put on the benchmark calendar.
type Alignment int

const (
	// AlignForwardFill carries the last known close of a holding into the
	// benchmark trading days where it has none.
	AlignForwardFill Alignment = iota
	// AlignStrict keeps only the benchmark trading days where the holding
	// has an actual close.
	AlignStrict
)

func (a Alignment) String() string {
	switch a {
	case AlignStrict:
		return "strict"
	default:
		return "ffill"
	}
}

// ParseAlignment parses "ffill" or "strict".
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "ffill", "":
		return AlignForwardFill, nil
	case "strict":
		return AlignStrict, nil
	default:
		return AlignForwardFill, fmt.Errorf("unknown alignment %q, want ffill or strict", s)
	}
}

// Default engine settings.
const (
	DefaultConcurrency = 4
	DefaultTimeout     = 20 * time.Second
)

// Engine values a list of holdings against a benchmark using a Gateway.
//
// An Engine holds no state between calls: every Compute fetches what it needs.
type Engine struct {
	Gateway     Gateway
	Currency    string
	Alignment   Alignment
	Concurrency int           // max number of histories fetched at once
	Timeout     time.Duration // per symbol fetch timeout
	Today       func() date.Date
}

// NewEngine returns an Engine with default settings.
func NewEngine(gw Gateway, currency string) *Engine {
	return &Engine{
		Gateway:     gw,
		Currency:    currency,
		Alignment:   AlignForwardFill,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Today:       date.Today,
	}
}

// Window returns the date range queried for holdings over lookback.
func (e *Engine) Window(holdings []Holding, lookback Lookback) date.Range {
	earliest := holdings[0].BuyDate
	for _, h := range holdings[1:] {
		earliest = date.Min(earliest, h.BuyDate)
	}
	return lookback.Window(earliest, e.Today())
}

// Compute values the holdings over the lookback window and compares them to
// the benchmark.
//
// Any holding that cannot be priced makes the whole computation fail: the
// totals always account for every holding.
func (e *Engine) Compute(ctx context.Context, holdings []Holding, benchmark string, lookback Lookback) (*Valuation, error) {
	if len(holdings) == 0 {
		return nil, ErrNoHoldings
	}
	window := e.Window(holdings, lookback)

	bench, err := e.history(ctx, benchmark, window)
	if err != nil {
		log.Printf("warning: benchmark %q: %v", benchmark, err)
		return nil, fmt.Errorf("%w: %v", ErrBenchmarkUnavailable, err)
	}
	if bench.Len() < 2 {
		return nil, fmt.Errorf("%w: %d point(s) for %s in %s", ErrBenchmarkUnavailable, bench.Len(), benchmark, window)
	}

	closes, err := e.fetchAll(ctx, holdings, window)
	if err != nil {
		return nil, err
	}

	calendar := bench.Days()
	fill := e.Alignment == AlignForwardFill

	v := &Valuation{
		Benchmark: benchmark,
		Lookback:  lookback,
		Window:    window,
		Currency:  e.Currency,
		Rows:      make([]Row, 0, len(holdings)),
	}
	values := make([]*date.History[float64], 0, len(holdings))
	invested := M(0, e.Currency)

	for i, h := range holdings {
		aligned := closes[i].Reindex(calendar, fill)
		if aligned.Len() < 2 {
			return nil, &InsufficientHoldingDataError{Symbol: h.Symbol, Points: aligned.Len()}
		}
		row := e.row(h, aligned)
		v.Rows = append(v.Rows, row)
		invested = invested.Add(row.Invested)

		qty := float64(h.Quantity)
		values = append(values, date.Map(aligned, func(c float64) float64 { return c * qty }))
	}

	v.PortfolioValue = date.Sum(values...)
	if v.PortfolioValue.Len() < 2 {
		return nil, fmt.Errorf("%w: %d common day(s)", ErrInsufficientAlignedData, v.PortfolioValue.Len())
	}

	// The portfolio days are the reference calendar, the benchmark follows.
	v.BenchmarkValue = bench.Reindex(v.PortfolioValue.Days(), true)
	v.PortfolioReturn = Returns(v.PortfolioValue)
	v.BenchmarkReturn = Returns(v.BenchmarkValue)

	_, last := v.PortfolioValue.At(-1)
	_, prev := v.PortfolioValue.At(-2)
	_, benchReturn := v.BenchmarkReturn.Latest()

	total := M(last, e.Currency)
	previous := M(prev, e.Currency)
	v.KPI = KPI{
		TotalValue:       total,
		TotalInvested:    invested,
		TotalPL:          total.Sub(invested),
		TotalPLPercent:   total.Gain(invested),
		DayChange:        total.Sub(previous),
		DayChangePercent: total.Gain(previous),
		BenchmarkReturn:  Percent(benchReturn),
	}
	return v, nil
}

// row computes the valuation of h from its aligned closes (at least two).
func (e *Engine) row(h Holding, closes *date.History[float64]) Row {
	_, last := closes.At(-1)
	_, prev := closes.At(-2)
	qty := Q(h.Quantity)

	price := M(last, e.Currency)
	previous := M(prev, e.Currency)
	invested := h.Invested(e.Currency)
	current := price.Mul(qty)

	return Row{
		Symbol:       h.Symbol,
		Name:         h.Label(),
		Quantity:     qty,
		BuyPrice:     M(h.BuyPrice, e.Currency),
		CurrentPrice: price,
		Invested:     invested,
		CurrentValue: current,
		PL:           current.Sub(invested),
		PLPercent:    current.Gain(invested),
		DayPL:        price.Sub(previous).Mul(qty),
		DayPercent:   price.Gain(previous),
	}
}

// fetchAll fetches every holding history concurrently. Failures are reported
// for the first failing holding in portfolio order.
func (e *Engine) fetchAll(ctx context.Context, holdings []Holding, window date.Range) ([]*date.History[float64], error) {
	closes := make([]*date.History[float64], len(holdings))
	errs := make([]error, len(holdings))

	var g errgroup.Group
	if e.Concurrency > 0 {
		g.SetLimit(e.Concurrency)
	}
	for i, h := range holdings {
		g.Go(func() error {
			closes[i], errs[i] = e.history(ctx, h.Symbol, window)
			return nil
		})
	}
	g.Wait()

	for i, err := range errs {
		if err != nil {
			log.Printf("warning: holding %q: %v", holdings[i].Symbol, err)
			return nil, &HoldingDataUnavailableError{Symbol: holdings[i].Symbol, Err: err}
		}
	}
	return closes, nil
}

// history fetches one series with the engine timeout.
func (e *Engine) history(ctx context.Context, symbol string, window date.Range) (*date.History[float64], error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	h, err := e.Gateway.History(ctx, symbol, window.From, window.To)
	if err != nil {
		return nil, err
	}
	if h == nil || h.Len() == 0 {
		return nil, fmt.Errorf("%w: no prices for %q in %s", ErrNotAvailable, symbol, window)
	}
	return h, nil
}
