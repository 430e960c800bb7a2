package tracker

import (
	"cmp"
	"slices"

	"github.com/etnz/tracker/date"
)

// Row is the valuation of a single holding.
type Row struct {
	Symbol       string
	Name         string
	Quantity     Quantity
	BuyPrice     Money
	CurrentPrice Money
	Invested     Money
	CurrentValue Money
	PL           Money
	PLPercent    Percent
	DayPL        Money
	DayPercent   Percent
}

// KPI holds the portfolio totals.
type KPI struct {
	TotalValue       Money
	TotalInvested    Money
	TotalPL          Money
	TotalPLPercent   Percent
	DayChange        Money
	DayChangePercent Percent
	BenchmarkReturn  Percent
}

// Valuation is the result of one Engine.Compute call.
//
// The four series share the same date index: the days where every holding
// has a price.
type Valuation struct {
	Benchmark string
	Lookback  Lookback
	Window    date.Range
	Currency  string

	PortfolioValue  *date.History[float64]
	BenchmarkValue  *date.History[float64]
	PortfolioReturn *date.History[float64]
	BenchmarkReturn *date.History[float64]

	Rows []Row
	KPI  KPI
}

// Gainers returns at most n rows up on the day, best first.
func (v *Valuation) Gainers(n int) []Row {
	return movers(v.Rows, n, func(r Row) bool { return r.DayPercent > 0 }, func(a, b Row) int {
		return cmp.Compare(float64(b.DayPercent), float64(a.DayPercent))
	})
}

// Losers returns at most n rows down on the day, worst first.
func (v *Valuation) Losers(n int) []Row {
	return movers(v.Rows, n, func(r Row) bool { return r.DayPercent < 0 }, func(a, b Row) int {
		return cmp.Compare(float64(a.DayPercent), float64(b.DayPercent))
	})
}

func movers(rows []Row, n int, keep func(Row) bool, order func(a, b Row) int) []Row {
	res := make([]Row, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			res = append(res, r)
		}
	}
	// stable, so that ties keep the portfolio order.
	slices.SortStableFunc(res, order)
	if len(res) > n {
		res = res[:n]
	}
	return res
}

// Returns converts a value series into its cumulative return in percent
// relative to its first point: (v[t]/v[0] - 1)×100.
func Returns(values *date.History[float64]) *date.History[float64] {
	if values.Len() == 0 {
		return new(date.History[float64])
	}
	_, base := values.First()
	return date.Map(values, func(v float64) float64 {
		if base == 0 {
			return 0
		}
		return (v/base - 1) * 100
	})
}
