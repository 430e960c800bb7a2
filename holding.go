package tracker

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/etnz/tracker/date"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Holding is one line of the portfolio: a quantity of a security bought at a
// given price on a given day. A Holding is never modified once created.
type Holding struct {
	Symbol   string          `json:"symbol" validate:"required"`
	Name     string          `json:"name,omitempty"`
	Quantity int64           `json:"quantity" validate:"gt=0"`
	BuyPrice decimal.Decimal `json:"buyPrice" validate:"gt=0"`
	BuyDate  date.Date       `json:"buyDate" validate:"required"`
}

// NewHolding returns a holding, the display name defaults to the symbol.
func NewHolding(symbol, name string, quantity int64, buyPrice decimal.Decimal, buyDate date.Date) Holding {
	symbol = strings.TrimSpace(symbol)
	name = strings.TrimSpace(name)
	if name == "" {
		name = symbol
	}
	return Holding{
		Symbol:   symbol,
		Name:     name,
		Quantity: quantity,
		BuyPrice: buyPrice,
		BuyDate:  buyDate,
	}
}

// Label returns the human readable name of the holding.
func (h Holding) Label() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Symbol
}

// Invested returns the cost basis of the holding: quantity × buy price.
func (h Holding) Invested(currency string) Money {
	return M(h.BuyPrice, currency).Mul(Q(h.Quantity))
}

// ErrInvalidHolding is returned when a Holding breaks one of its invariants.
var ErrInvalidHolding = errors.New("invalid holding")

// validate is shared, validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimals and dates are validated through their natural scalar.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(date.Date); ok && !d.IsZero() {
			return d.Time()
		}
		return nil
	}, date.Date{})
	return v
}

// Validate checks the holding invariants as of 'today': a symbol, a positive
// quantity and buy price, and a buy date that is not in the future.
func (h Holding) Validate(today date.Date) error {
	if err := validate.Struct(h); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w %q: %s", ErrInvalidHolding, h.Symbol, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w %q: %v", ErrInvalidHolding, h.Symbol, err)
	}
	if h.BuyDate.After(today) {
		return fmt.Errorf("%w %q: buy date %s is in the future", ErrInvalidHolding, h.Symbol, h.BuyDate)
	}
	return nil
}
