package date

import (
	"iter"
	"slices"
	"sort"
)

// Value is the set of types a History can hold.
type Value interface {
	float32 | float64 | string
}

// Number is the set of numeric types a History can be aggregated on.
type Number interface {
	float32 | float64
}

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T Value] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T) // return zero value of T
	}
	return h.days[last], h.values[last]
}

// First returns the earliest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) First() (day Date, value T) {
	if len(h.days) == 0 {
		return Date{}, *new(T)
	}
	return h.days[0], h.values[0]
}

// At returns the i-th point of the history, negative indexes count from the end.
func (h *History[T]) At(i int) (day Date, value T) {
	if i < 0 {
		i += len(h.days)
	}
	return h.days[i], h.values[i]
}

// Clear removes all items from the history.
func (h *History[T]) Clear() {
	h.days = h.days[:0]
	h.values = h.values[:0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Days returns a copy of the history's date index.
func (h *History[T]) Days() []Date { return slices.Clone(h.days) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T Value] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].time().Before(s.days[j].time()) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if n := len(h.days); n == 0 || h.days[n-1].Before(on) {
		// Chronological appends are the common case for provider data.
		h.days, h.values = append(h.days, on), append(h.values, q)
		return h
	}
	if i := slices.Index(h.days, on); i >= 0 {
		// Found a point at that exact same instant.
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	var value T
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	return value, false
}

// ValueAsOf returns the value on a given day, or the most recent value before it.
// It returns the value and true if found, otherwise it returns the zero value and false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}

	// Not found. `i` is the index where `day` would be inserted.
	// The value we want is at `i-1`, which is the last entry before the target date.
	if i == 0 {
		var zero T
		return zero, false // No date on or before the given day.
	}
	return h.values[i-1], true
}

// search binary searches the sorted days.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, func(d, t Date) int { return d.Compare(t) })
}

// Reindex returns a new History defined on 'days' only.
//
// With fill, a day missing from h takes the most recent value before it
// (forward fill); without it the day is skipped. Days before the first point
// of h have no value to carry and are always skipped, so the result only
// holds days where a value is actually known.
func (h *History[T]) Reindex(days []Date, fill bool) *History[T] {
	res := &History[T]{
		days:   make([]Date, 0, len(days)),
		values: make([]T, 0, len(days)),
	}
	for _, day := range days {
		var v T
		var ok bool
		if fill {
			v, ok = h.ValueAsOf(day)
		} else {
			v, ok = h.Get(day)
		}
		if ok {
			res.Append(day, v)
		}
	}
	return res
}

// Map returns a new History with f applied to every value.
func Map[T, U Number](h *History[T], f func(T) U) *History[U] {
	res := &History[U]{
		days:   slices.Clone(h.days),
		values: make([]U, len(h.values)),
	}
	for i, v := range h.values {
		res.values[i] = f(v)
	}
	return res
}

// Sum returns the date-wise sum of histories.
//
// Only days where every history has a value are kept: a day missing in any
// of them is dropped from the result.
func Sum[T Number](histories ...*History[T]) *History[T] {
	res := new(History[T])
	if len(histories) == 0 {
		return res
	}
next:
	for day := range Iterate(histories...) {
		var total T
		for _, h := range histories {
			v, ok := h.Get(day)
			if !ok {
				continue next
			}
			total += v
		}
		res.Append(day, total)
	}
	return res
}
