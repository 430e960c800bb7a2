package tracker

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

// Nifty500URL is the NSE list of the NIFTY 500 index constituents.
const Nifty500URL = "https://archives.nseindia.com/content/indices/ind_nifty500list.csv"

// ExchangeSuffix is appended to NSE symbols to get a gateway symbol.
const ExchangeSuffix = ".NS"

// Listing is a security known by the symbol directory.
type Listing struct {
	Symbol   string // gateway symbol, e.g. "TCS.NS"
	Name     string
	Industry string
}

// Directory resolves company names and bare exchange symbols into gateway
// symbols.
type Directory struct {
	listings []Listing
}

// ErrUnknownSymbol is returned when a query matches no listing.
var ErrUnknownSymbol = errors.New("unknown symbol")

// NewDirectory returns a directory of the given listings.
func NewDirectory(listings ...Listing) *Directory {
	return &Directory{listings: slices.Clone(listings)}
}

// DecodeDirectory reads an NSE index constituents CSV. Only the "Company
// Name" and "Symbol" columns are required.
func DecodeDirectory(r io.Reader) (*Directory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read directory header: %w", err)
	}
	col := make(map[string]int)
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	nameCol, okName := col["Company Name"]
	symbolCol, okSymbol := col["Symbol"]
	if !okName || !okSymbol {
		return nil, fmt.Errorf("invalid directory header %q: want \"Company Name\" and \"Symbol\"", header)
	}
	industryCol, okIndustry := col["Industry"]

	d := new(Directory)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read directory: %w", err)
		}
		if symbolCol >= len(rec) || nameCol >= len(rec) {
			continue
		}
		symbol := strings.TrimSpace(rec[symbolCol])
		if symbol == "" {
			continue
		}
		l := Listing{Symbol: symbol + ExchangeSuffix, Name: strings.TrimSpace(rec[nameCol])}
		if okIndustry && industryCol < len(rec) {
			l.Industry = strings.TrimSpace(rec[industryCol])
		}
		d.listings = append(d.listings, l)
	}
	return d, nil
}

// FetchDirectory downloads and decodes the directory at addr.
func FetchDirectory(ctx context.Context, client *http.Client, addr string) (*Directory, error) {
	resp, err := Get(ctx, client, addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch symbol directory: %w", err)
	}
	defer resp.Body.Close()
	return DecodeDirectory(resp.Body)
}

// Len returns the number of listings.
func (d *Directory) Len() int { return len(d.listings) }

// Resolve finds the listing for a gateway symbol ("TCS.NS"), a bare exchange
// symbol ("tcs") or an exact company name, case insensitive.
func (d *Directory) Resolve(query string) (Listing, error) {
	q := strings.TrimSpace(query)
	for _, l := range d.listings {
		if strings.EqualFold(l.Symbol, q) || strings.EqualFold(l.Symbol, q+ExchangeSuffix) || strings.EqualFold(l.Name, q) {
			return l, nil
		}
	}
	return Listing{}, fmt.Errorf("%w %q", ErrUnknownSymbol, query)
}

// Search returns the listings whose symbol or name contains term, case
// insensitive, in directory order.
func (d *Directory) Search(term string) []Listing {
	term = strings.ToLower(strings.TrimSpace(term))
	var res []Listing
	for _, l := range d.listings {
		if strings.Contains(strings.ToLower(l.Symbol), term) || strings.Contains(strings.ToLower(l.Name), term) {
			res = append(res, l)
		}
	}
	return res
}
