package date

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[1], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[0], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[1], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[0], v2)
	}

	h.Append(d1, "overwritten")
	if h.Len() != 2 {
		t.Errorf("Append(d1, ...) on existing day Len() = %v want 2", h.Len())
	}
	if v, _ := h.Get(d1); v != "overwritten" {
		t.Errorf("Get(d1) = %q want %q", v, "overwritten")
	}
}

// series builds a float history from "yyyy-mm-dd", value pairs.
func series(points ...any) *History[float64] {
	h := new(History[float64])
	for i := 0; i < len(points); i += 2 {
		h.Append(MustParse(points[i].(string)), points[i+1].(float64))
	}
	return h
}

type point struct {
	Day   string
	Value float64
}

func points(h *History[float64]) []point {
	var res []point
	for d, v := range h.Values() {
		res = append(res, point{d.String(), v})
	}
	return res
}

func TestValueAsOf(t *testing.T) {
	h := series("2025-01-06", 10.0, "2025-01-08", 12.0)

	tests := []struct {
		day    string
		want   float64
		wantOK bool
	}{
		{"2025-01-05", 0, false},
		{"2025-01-06", 10, true},
		{"2025-01-07", 10, true},
		{"2025-01-08", 12, true},
		{"2025-01-31", 12, true},
	}
	for _, tt := range tests {
		got, ok := h.ValueAsOf(MustParse(tt.day))
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ValueAsOf(%s) = %v, %v want %v, %v", tt.day, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestReindex(t *testing.T) {
	benchmark := series(
		"2025-01-06", 100.0,
		"2025-01-07", 101.0,
		"2025-01-08", 102.0,
		"2025-01-09", 103.0,
		"2025-01-10", 104.0,
	)
	// starts late, misses the 9th and has a point the benchmark does not.
	holding := series(
		"2025-01-07", 10.0,
		"2025-01-08", 11.0,
		"2025-01-11", 99.0,
		"2025-01-10", 13.0,
	)

	tests := []struct {
		name string
		fill bool
		want []point
	}{
		{
			name: "forward fill",
			fill: true,
			want: []point{{"2025-01-07", 10}, {"2025-01-08", 11}, {"2025-01-09", 11}, {"2025-01-10", 13}},
		},
		{
			name: "strict",
			fill: false,
			want: []point{{"2025-01-07", 10}, {"2025-01-08", 11}, {"2025-01-10", 13}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := points(holding.Reindex(benchmark.Days(), tt.fill))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reindex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReindexIdempotent(t *testing.T) {
	h := series("2025-01-06", 1.0, "2025-01-07", 2.0, "2025-01-09", 3.0)
	once := h.Reindex(h.Days(), true)
	twice := once.Reindex(once.Days(), true)
	if diff := cmp.Diff(points(h), points(twice)); diff != "" {
		t.Errorf("Reindex() on own index changed the series (-want +got):\n%s", diff)
	}
}

func TestSum(t *testing.T) {
	a := series("2025-01-06", 1.0, "2025-01-07", 2.0, "2025-01-08", 3.0)
	b := series("2025-01-07", 10.0, "2025-01-08", 20.0, "2025-01-09", 30.0)

	got := points(Sum(a, b))
	want := []point{{"2025-01-07", 12}, {"2025-01-08", 23}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sum() mismatch (-want +got):\n%s", diff)
	}

	if n := Sum[float64]().Len(); n != 0 {
		t.Errorf("Sum().Len() = %d want 0", n)
	}
}

func TestMap(t *testing.T) {
	h := series("2025-01-06", 1.5, "2025-01-07", 2.0)
	got := points(Map(h, func(v float64) float64 { return v * 10 }))
	want := []point{{"2025-01-06", 15}, {"2025-01-07", 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

func TestAt(t *testing.T) {
	h := series("2025-01-06", 1.0, "2025-01-07", 2.0, "2025-01-08", 3.0)
	if d, v := h.At(-2); d != MustParse("2025-01-07") || v != 2 {
		t.Errorf("At(-2) = %v, %v want 2025-01-07, 2", d, v)
	}
	if d, v := h.First(); d != MustParse("2025-01-06") || v != 1 {
		t.Errorf("First() = %v, %v want 2025-01-06, 1", d, v)
	}
}
