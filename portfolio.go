package tracker

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"slices"

	"github.com/etnz/tracker/date"
)

// Portfolio is the ordered list of holdings owned by a session.
//
// The only mutations are Append and Clear: holdings are never edited nor
// removed one by one. Insertion order is the display order.
type Portfolio struct {
	holdings []Holding
}

// NewPortfolio returns a portfolio with the given holdings.
func NewPortfolio(holdings ...Holding) *Portfolio {
	return &Portfolio{holdings: slices.Clone(holdings)}
}

// Append validates h as of 'today' and adds it at the end of the portfolio.
func (p *Portfolio) Append(today date.Date, h Holding) error {
	if err := h.Validate(today); err != nil {
		return err
	}
	p.holdings = append(p.holdings, h)
	return nil
}

// Clear empties the portfolio.
func (p *Portfolio) Clear() { p.holdings = nil }

// Len returns the number of holdings.
func (p *Portfolio) Len() int { return len(p.holdings) }

// IsEmpty reports whether the portfolio has no holdings.
func (p *Portfolio) IsEmpty() bool { return len(p.holdings) == 0 }

// Holdings returns a copy of the holdings, in insertion order.
func (p *Portfolio) Holdings() []Holding { return slices.Clone(p.holdings) }

// All iterates over the holdings in insertion order.
func (p *Portfolio) All() iter.Seq2[int, Holding] { return slices.All(p.holdings) }

// DecodePortfolio reads a portfolio from a JSONL stream, one holding per line.
// Blank lines are ignored. Every holding is validated as of 'today'.
func DecodePortfolio(r io.Reader, today date.Date) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		var h Holding
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, fmt.Errorf("line %d: invalid holding: %w", line, err)
		}
		if h.Name == "" {
			h.Name = h.Symbol
		}
		if err := p.Append(today, h); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodePortfolio writes the portfolio as JSONL, one holding per line.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	enc := json.NewEncoder(w)
	for _, h := range p.holdings {
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("cannot encode holding %q: %w", h.Symbol, err)
		}
	}
	return nil
}

// LoadPortfolio decodes the portfolio file, validating holdings as of 'today'.
// A missing file is an empty portfolio.
func LoadPortfolio(filename string, today date.Date) (*Portfolio, error) {
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return NewPortfolio(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := DecodePortfolio(f, today)
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio %q: %w", filename, err)
	}
	return p, nil
}

// SavePortfolio replaces the portfolio file content.
func SavePortfolio(filename string, p *Portfolio) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := EncodePortfolio(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
