package tracker

import (
	"fmt"
	"strings"

	"github.com/etnz/tracker/date"
)

// Lookback is the timeframe selected to look at the portfolio performance.
// Its value is the approximate number of trading days it covers.
type Lookback int

const (
	FiveDays  Lookback = 5
	OneMonth  Lookback = 21
	SixMonths Lookback = 126
	OneYear   Lookback = 252
	ThreeYear Lookback = 756
)

// Lookbacks lists the supported timeframes, shortest first.
var Lookbacks = []Lookback{FiveDays, OneMonth, SixMonths, OneYear, ThreeYear}

// TradingDays returns the number of trading days of the timeframe.
func (l Lookback) TradingDays() int { return int(l) }

func (l Lookback) String() string {
	switch l {
	case FiveDays:
		return "5D"
	case OneMonth:
		return "1M"
	case SixMonths:
		return "6M"
	case OneYear:
		return "1Y"
	case ThreeYear:
		return "3Y"
	default:
		return fmt.Sprintf("%dtd", int(l))
	}
}

// ParseLookback parses a timeframe label such as "1M" (case insensitive).
func ParseLookback(s string) (Lookback, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, l := range Lookbacks {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown timeframe %q, want one of 5D, 1M, 6M, 1Y, 3Y", s)
}

// Window returns the date range to query for a portfolio bought as early as
// 'earliest' and observed over l.
//
// The range goes back twice the number of trading days in calendar days, so
// that weekends and holidays still leave enough trading sessions, but never
// before the earliest buy date: prices from before a purchase are
// meaningless for the portfolio.
func (l Lookback) Window(earliest, today date.Date) date.Range {
	lower := today.Add(-2 * l.TradingDays())
	return date.Range{From: date.Max(earliest, lower), To: today}
}
