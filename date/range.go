package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return (!date.Before(r.From) && !date.After(r.To)) }

// Days returns the number of calendar days in the range, boundaries included.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	return int(r.To.time().Sub(r.From.time())/Day) + 1
}

// String returns the "from..to" representation of the range.
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// Identifier compute a unique identifier for the Range of a standard period.
func (r Range) Identifier(p Period) string {
	switch p {
	case Daily:
		return r.From.String()
	case Monthly:
		return r.From.Format("2006-01")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(period Period) Date {
	if period == Monthly {
		return New(d.Year(), d.Month(), 1)
	}
	return d
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(period Period) Date {
	if period == Monthly {
		return New(d.Year(), d.Month()+1, 0)
	}
	return d
}
