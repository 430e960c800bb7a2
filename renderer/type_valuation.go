package renderer

import (
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// MaxMovers is the number of gainers and losers shown on the dashboard.
const MaxMovers = 5

// MaxSeriesRows is the number of comparison points shown in markdown.
const MaxSeriesRows = 20

// Valuation is the dashboard view of a tracker.Valuation. It is also the
// JSON output of the value command.
type Valuation struct {
	Benchmark string    `json:"benchmark"`
	Timeframe string    `json:"timeframe"`
	From      date.Date `json:"from"`
	To        date.Date `json:"to"`
	Currency  string    `json:"currency"`
	KPI       KPI       `json:"kpi"`
	Series    []Point   `json:"series"`
	Holdings  []Row     `json:"holdings"`
	Gainers   []Row     `json:"gainers"`
	Losers    []Row     `json:"losers"`
}

// KPI holds the portfolio totals.
type KPI struct {
	TotalValue       tracker.Money   `json:"totalValue"`
	TotalInvested    tracker.Money   `json:"totalInvested"`
	TotalPL          tracker.Money   `json:"totalPL"`
	TotalPLPercent   tracker.Percent `json:"totalPLPercent"`
	DayChange        tracker.Money   `json:"dayChange"`
	DayChangePercent tracker.Percent `json:"dayChangePercent"`
	BenchmarkReturn  tracker.Percent `json:"benchmarkReturn"`
}

// Point is one day of the portfolio vs benchmark comparison.
type Point struct {
	Date            date.Date `json:"date"`
	PortfolioValue  float64   `json:"portfolioValue"`
	BenchmarkValue  float64   `json:"benchmarkValue"`
	PortfolioReturn float64   `json:"portfolioReturn"`
	BenchmarkReturn float64   `json:"benchmarkReturn"`
}

// Row is the valuation of one holding.
type Row struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	Quantity     tracker.Quantity `json:"quantity"`
	BuyPrice     tracker.Money    `json:"buyPrice"`
	CurrentPrice tracker.Money    `json:"currentPrice"`
	Invested     tracker.Money    `json:"invested"`
	CurrentValue tracker.Money    `json:"currentValue"`
	PL           tracker.Money    `json:"pl"`
	PLPercent    tracker.Percent  `json:"plPercent"`
	DayPL        tracker.Money    `json:"dayPL"`
	DayPercent   tracker.Percent  `json:"dayPercent"`
}

// NewValuation builds the dashboard view of v.
func NewValuation(v *tracker.Valuation) *Valuation {
	k := v.KPI
	res := &Valuation{
		Benchmark: v.Benchmark,
		Timeframe: v.Lookback.String(),
		From:      v.Window.From,
		To:        v.Window.To,
		Currency:  v.Currency,
		KPI: KPI{
			TotalValue:       k.TotalValue,
			TotalInvested:    k.TotalInvested,
			TotalPL:          k.TotalPL,
			TotalPLPercent:   k.TotalPLPercent,
			DayChange:        k.DayChange,
			DayChangePercent: k.DayChangePercent,
			BenchmarkReturn:  k.BenchmarkReturn,
		},
		Holdings: rows(v.Rows),
		Gainers:  rows(v.Gainers(MaxMovers)),
		Losers:   rows(v.Losers(MaxMovers)),
	}

	// all four series share the portfolio days.
	for i := range v.PortfolioValue.Len() {
		day, value := v.PortfolioValue.At(i)
		_, bench := v.BenchmarkValue.At(i)
		_, ret := v.PortfolioReturn.At(i)
		_, benchRet := v.BenchmarkReturn.At(i)
		res.Series = append(res.Series, Point{
			Date:            day,
			PortfolioValue:  value,
			BenchmarkValue:  bench,
			PortfolioReturn: ret,
			BenchmarkReturn: benchRet,
		})
	}
	return res
}

// SeriesRows returns at most MaxSeriesRows points of the series, first and
// last included.
func (v Valuation) SeriesRows() []Point { return sample(v.Series, MaxSeriesRows) }

func rows(in []tracker.Row) []Row {
	res := make([]Row, 0, len(in))
	for _, r := range in {
		res = append(res, Row(r))
	}
	return res
}
