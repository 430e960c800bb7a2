package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/etnz/tracker/date"
)

// ErrNotAvailable is returned by a Gateway when a source has no data for a
// query: unknown or delisted symbol, no trading activity, or source outage.
var ErrNotAvailable = errors.New("market data not available")

// Gateway is a source of daily closing prices.
type Gateway interface {
	// LatestClose returns the most recent closing price of symbol over the last
	// few days. ok is false when no price is available, which is not an error.
	LatestClose(ctx context.Context, symbol string) (price float64, ok bool)

	// History returns the closing prices of symbol for every trading day in
	// [from, to], boundaries included. It returns an error wrapping
	// ErrNotAvailable when there is no data at all.
	History(ctx context.Context, symbol string, from, to date.Date) (*date.History[float64], error)
}

// LatestCloseWindow is the number of calendar days looked back by
// LatestClose implementations, enough to span a long weekend.
const LatestCloseWindow = 7

// LatestFromHistory implements LatestClose on top of a History query.
func LatestFromHistory(ctx context.Context, gw Gateway, symbol string, today date.Date) (float64, bool) {
	h, err := gw.History(ctx, symbol, today.Add(-LatestCloseWindow), today)
	if err != nil {
		log.Printf("warning: no latest close for %q: %v", symbol, err)
		return 0, false
	}
	if h.Len() == 0 {
		return 0, false
	}
	_, price := h.Latest()
	return price, true
}

// MemoryGateway is a Gateway serving prices held in memory.
type MemoryGateway struct {
	prices map[string]*date.History[float64]
	Today  func() date.Date
}

// NewMemoryGateway returns an empty MemoryGateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		prices: make(map[string]*date.History[float64]),
		Today:  date.Today,
	}
}

// Append records the close of symbol on day.
func (m *MemoryGateway) Append(symbol string, day date.Date, close float64) *MemoryGateway {
	h, ok := m.prices[symbol]
	if !ok {
		h = new(date.History[float64])
		m.prices[symbol] = h
	}
	h.Append(day, close)
	return m
}

// History implements Gateway.
func (m *MemoryGateway) History(ctx context.Context, symbol string, from, to date.Date) (*date.History[float64], error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotAvailable, symbol, err)
	}
	h, ok := m.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: unknown symbol %q", ErrNotAvailable, symbol)
	}
	res := new(date.History[float64])
	r := date.Range{From: from, To: to}
	for day, v := range h.Values() {
		if r.Contains(day) {
			res.Append(day, v)
		}
	}
	if res.Len() == 0 {
		return nil, fmt.Errorf("%w: no prices for %q in %s", ErrNotAvailable, symbol, r)
	}
	return res, nil
}

// LatestClose implements Gateway.
func (m *MemoryGateway) LatestClose(ctx context.Context, symbol string) (float64, bool) {
	return LatestFromHistory(ctx, m, symbol, m.Today())
}
