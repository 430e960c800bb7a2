package date

import "fmt"

// Period is a calendar period used to expire cached data.
type Period int

const (
	Daily Period = iota
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
