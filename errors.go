package tracker

import (
	"errors"
	"fmt"
)

// ErrValuation is the root of every error reported by Engine.Compute.
var ErrValuation = errors.New("valuation failed")

var (
	// ErrNoHoldings is returned when Compute is called on an empty portfolio.
	ErrNoHoldings = fmt.Errorf("%w: no holdings", ErrValuation)

	// ErrBenchmarkUnavailable is returned when the benchmark has less than two
	// closes in the window.
	ErrBenchmarkUnavailable = fmt.Errorf("%w: benchmark data not available", ErrValuation)

	// ErrInsufficientAlignedData is returned when the holdings do not share at
	// least two days with a price for each of them.
	ErrInsufficientAlignedData = fmt.Errorf("%w: not enough aligned market data to compute portfolio performance", ErrValuation)
)

// HoldingDataUnavailableError is returned when the price history of a
// holding cannot be fetched.
type HoldingDataUnavailableError struct {
	Symbol string
	Err    error
}

func (e *HoldingDataUnavailableError) Error() string {
	return fmt.Sprintf("data not available for %s: %v", e.Symbol, e.Err)
}

func (e *HoldingDataUnavailableError) Is(target error) bool { return target == ErrValuation }
func (e *HoldingDataUnavailableError) Unwrap() error        { return e.Err }

// InsufficientHoldingDataError is returned when a holding has less than two
// closes once aligned on the benchmark calendar.
type InsufficientHoldingDataError struct {
	Symbol string
	Points int
}

func (e *InsufficientHoldingDataError) Error() string {
	return fmt.Sprintf("not enough market data yet for %s: %d point(s)", e.Symbol, e.Points)
}

func (e *InsufficientHoldingDataError) Is(target error) bool { return target == ErrValuation }
