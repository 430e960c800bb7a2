package renderer

import (
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// Holdings is the view of the portfolio content.
type Holdings struct {
	Currency string    `json:"currency"`
	Items    []Holding `json:"holdings"`
	Invested tracker.Money
}

// Holding is one line of the portfolio.
type Holding struct {
	Symbol   string           `json:"symbol"`
	Name     string           `json:"name"`
	Quantity tracker.Quantity `json:"quantity"`
	BuyPrice tracker.Money    `json:"buyPrice"`
	BuyDate  date.Date        `json:"buyDate"`
	Invested tracker.Money    `json:"invested"`
}

// NewHoldings builds the view of p valued in currency.
func NewHoldings(p *tracker.Portfolio, currency string) *Holdings {
	res := &Holdings{Currency: currency, Invested: tracker.M(0, currency)}
	for _, h := range p.All() {
		invested := h.Invested(currency)
		res.Items = append(res.Items, Holding{
			Symbol:   h.Symbol,
			Name:     h.Label(),
			Quantity: tracker.Q(h.Quantity),
			BuyPrice: tracker.M(h.BuyPrice, currency),
			BuyDate:  h.BuyDate,
			Invested: invested,
		})
		res.Invested = res.Invested.Add(invested)
	}
	return res
}

// Quote is the latest close of a symbol, OK is false when not available.
type Quote struct {
	Symbol string
	Price  tracker.Money
	OK     bool
}

// Listings is a symbol directory search result.
type Listings struct {
	Term  string
	Items []tracker.Listing
}
