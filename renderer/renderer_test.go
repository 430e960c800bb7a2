package renderer

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var monday = date.New(2025, 3, 10)

func testValuation(t *testing.T) *tracker.Valuation {
	t.Helper()
	gw := tracker.NewMemoryGateway()
	closes := map[string][]float64{
		"^NSEI": {22000, 22100, 22200, 22300, 22400},
		"A.NS":  {100, 102, 104, 106, 110},
		"B.NS":  {200, 198, 196, 194, 190},
		"C.NS":  {50, 50, 50, 50, 50},
	}
	for symbol, values := range closes {
		for i, v := range values {
			gw.Append(symbol, monday.Add(i), v)
		}
	}
	e := tracker.NewEngine(gw, "INR")
	e.Today = func() date.Date { return monday.Add(4) }

	holdings := []tracker.Holding{
		tracker.NewHolding("A.NS", "Alpha | Co", 10, decimal.NewFromInt(100), monday),
		tracker.NewHolding("B.NS", "Beta", 5, decimal.NewFromInt(200), monday),
		tracker.NewHolding("C.NS", "", 1, decimal.NewFromInt(50), monday),
	}
	v, err := e.Compute(context.Background(), holdings, "^NSEI", tracker.FiveDays)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	return v
}

// outline parses markdown and returns its headings and the number of rows
// (header included) of each table.
func outline(t *testing.T, md string) (headings []string, tables []int) {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	source := []byte(md)
	doc := parser.Parse(text.NewReader(source))
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			headings = append(headings, plain(n, source))
		case *extast.Table:
			tables = append(tables, n.ChildCount())
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return headings, tables
}

func plain(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		} else {
			b.WriteString(plain(c, source))
		}
	}
	return b.String()
}

func TestRenderValuation(t *testing.T) {
	md := RenderValuation(NewValuation(testValuation(t)))

	headings, tables := outline(t, md)
	wantHeadings := []string{
		"Portfolio vs ^NSEI (5D)",
		"Key Figures",
		"Portfolio vs Benchmark",
		"Holdings",
		"Top Gainers",
		"Top Losers",
	}
	if diff := cmp.Diff(wantHeadings, headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	// kpi, 5 days, 3 holdings, 1 gainer, 1 loser; plus the header rows.
	if diff := cmp.Diff([]int{2, 6, 4, 2, 2}, tables); diff != "" {
		t.Errorf("table rows mismatch (-want +got):\n%s\n%s", diff, md)
	}

	for _, want := range []string{
		"| ₹2,100 | ₹2,050 | +₹50 (+2.44%) |",
		`| A.NS | Alpha \| Co | 10 | ₹100.00 | ₹110.00 |`,
		"| 2025-03-10 | 2050.00 | 22000.00 | +0.00% | +0.00% |",
		"+3.77%",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderValuation() does not contain %q:\n%s", want, md)
		}
	}
}

func TestNewValuation_JSON(t *testing.T) {
	v := NewValuation(testValuation(t))
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	var got struct {
		Benchmark string
		Series    []struct{ Date string }
		Gainers   []struct{ Symbol string }
		Losers    []struct{ Symbol string }
		KPI       struct {
			TotalValue struct{ Amount string }
		}
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}
	if got.Benchmark != "^NSEI" || len(got.Series) != 5 || got.Series[0].Date != "2025-03-10" {
		t.Errorf("unexpected JSON header: %s", data)
	}
	if len(got.Gainers) != 1 || got.Gainers[0].Symbol != "A.NS" || len(got.Losers) != 1 || got.Losers[0].Symbol != "B.NS" {
		t.Errorf("unexpected movers: %s", data)
	}
	if got.KPI.TotalValue.Amount != "2100" {
		t.Errorf("KPI.TotalValue.Amount = %q want 2100", got.KPI.TotalValue.Amount)
	}
}

func TestSample(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff([]int{0, 3, 6, 9}, sample(s, 4)); diff != "" {
		t.Errorf("sample(10, 4) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s, sample(s, 20)); diff != "" {
		t.Errorf("sample(10, 20) mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHoldings(t *testing.T) {
	p := tracker.NewPortfolio(
		tracker.NewHolding("TCS.NS", "Tata Consultancy", 10, decimal.RequireFromString("3500.5"), date.New(2024, 3, 1)),
		tracker.NewHolding("INFY.NS", "", 5, decimal.NewFromInt(1400), date.New(2024, 4, 2)),
	)
	md := RenderHoldings(NewHoldings(p, "INR"))
	_, tables := outline(t, md)
	if diff := cmp.Diff([]int{3}, tables); diff != "" {
		t.Errorf("table rows mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{
		"| TCS.NS | Tata Consultancy | 10 | ₹3,500.50 | 2024-03-01 | ₹35,005.00 |",
		"Total invested: ₹42,005",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderHoldings() does not contain %q:\n%s", want, md)
		}
	}

	if md := RenderHoldings(NewHoldings(tracker.NewPortfolio(), "INR")); !strings.Contains(md, "No holdings yet") {
		t.Errorf("RenderHoldings() of an empty portfolio:\n%s", md)
	}
}

func TestRenderQuotes(t *testing.T) {
	md := RenderQuotes([]Quote{
		{Symbol: "TCS.NS", Price: tracker.M(3510.25, "INR"), OK: true},
		{Symbol: "GONE.NS"},
	})
	for _, want := range []string{"| TCS.NS | ₹3,510.25 |", "| GONE.NS | n/a |"} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderQuotes() does not contain %q:\n%s", want, md)
		}
	}
}

func TestRenderListings(t *testing.T) {
	md := RenderListings(&Listings{Term: "tcs", Items: []tracker.Listing{{Symbol: "TCS.NS", Name: "Tata Consultancy Services Ltd.", Industry: "IT"}}})
	if !strings.Contains(md, "| TCS.NS | Tata Consultancy Services Ltd. | IT |") {
		t.Errorf("RenderListings() unexpected output:\n%s", md)
	}
	if md := RenderListings(&Listings{Term: "zzz"}); !strings.Contains(md, `No symbol matches "zzz"`) {
		t.Errorf("RenderListings() of no result unexpected output:\n%s", md)
	}
}
