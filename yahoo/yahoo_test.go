package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/google/go-cmp/cmp"
)

// session returns the opening timestamp of an NSE session, 09:15 IST.
func session(day date.Date) int64 {
	return day.Time().Add(3*time.Hour + 45*time.Minute).Unix()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mon := date.New(2025, 3, 10)
	chart := fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"INR","symbol":"TCS.NS","gmtoffset":19800},
		"timestamp":[%d,%d,%d,%d],
		"indicators":{"quote":[{"close":[3500.5,null,3520,3510.25]}]}
	}],"error":null}}`, session(mon.Add(-3)), session(mon), session(mon.Add(1)), session(mon.Add(2)))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Errorf("request without User-Agent")
		}
		switch r.URL.Path {
		case "/TCS.NS":
			if r.URL.Query().Get("interval") != "1d" {
				t.Errorf("interval = %q want 1d", r.URL.Query().Get("interval"))
			}
			fmt.Fprint(w, chart)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, today date.Date) *Client {
	return &Client{
		BaseURL: srv.URL + "/",
		HTTP:    srv.Client(),
		Today:   func() date.Date { return today },
	}
}

func TestClient_History(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv, date.New(2025, 3, 14))

	h, err := c.History(context.Background(), "TCS.NS", date.New(2025, 3, 10), date.New(2025, 3, 14))
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	got := make(map[string]float64)
	for day, v := range h.Values() {
		got[day.String()] = v
	}
	// the null close of the 10th is skipped, the 7th is out of range.
	want := map[string]float64{
		"2025-03-11": 3520,
		"2025-03-12": 3510.25,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_HistoryNotAvailable(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv, date.New(2025, 3, 14))
	ctx := context.Background()

	if _, err := c.History(ctx, "GONE.NS", date.New(2025, 3, 1), date.New(2025, 3, 14)); !errors.Is(err, tracker.ErrNotAvailable) {
		t.Errorf("History(GONE.NS) error = %v want ErrNotAvailable", err)
	}
	// a valid symbol without any session in range.
	if _, err := c.History(ctx, "TCS.NS", date.New(2025, 3, 13), date.New(2025, 3, 14)); !errors.Is(err, tracker.ErrNotAvailable) {
		t.Errorf("History() of an empty range error = %v want ErrNotAvailable", err)
	}
}

func TestClient_LatestClose(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(srv, date.New(2025, 3, 14))
	ctx := context.Background()

	if price, ok := c.LatestClose(ctx, "TCS.NS"); !ok || price != 3510.25 {
		t.Errorf("LatestClose(TCS.NS) = %v, %v want 3510.25, true", price, ok)
	}
	if _, ok := c.LatestClose(ctx, "GONE.NS"); ok {
		t.Errorf("LatestClose(GONE.NS) ok = true want false")
	}
}

func TestParseChart_Invalid(t *testing.T) {
	for _, input := range []string{
		`{"chart":{"result":null}}`,
		`{"chart":{"result":[{"timestamp":[1,2],"indicators":{"quote":[{"close":[1]}]}}]}}`,
	} {
		var jobj any
		if err := jsonDecode(input, &jobj); err != nil {
			t.Fatal(err)
		}
		if _, err := parseChart(jobj); err == nil {
			t.Errorf("parseChart(%s) should fail", input)
		}
	}
}

func jsonDecode(s string, v any) error {
	return json.NewDecoder(strings.NewReader(s)).Decode(v)
}
