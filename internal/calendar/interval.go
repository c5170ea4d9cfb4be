package calendar

import "time"

// Kind selects which interval rules apply: months span 4 or 5 whole
// weeks, weeks span exactly 7 days.
type Kind int

const (
	KindMonth Kind = iota
	KindWeek
)

func (k Kind) String() string {
	if k == KindMonth {
		return "month"
	}
	return "week"
}

const day = 24 * time.Hour

// Interval is an inclusive [Start, End] range of civil dates. All dates
// in the system are normalized to UTC midnight, so day arithmetic over
// Sub and AddDate is exact.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive day count of the interval.
func (iv Interval) Days() int {
	return int(iv.End.Sub(iv.Start)/day) + 1
}

// Contains reports whether d lies within the interval, bounds included.
func (iv Interval) Contains(d time.Time) bool {
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// ContainsStrict reports whether d lies strictly between the bounds.
// Sibling overlap is defined in these terms: touching boundaries do
// not overlap.
func (iv Interval) ContainsStrict(d time.Time) bool {
	return d.After(iv.Start) && d.Before(iv.End)
}

// Midpoint returns the date 15 days into the interval. For months it
// always lands inside the second half of week 3, which pins the month
// to a single calendar year even when the interval straddles January 1.
func (iv Interval) Midpoint() time.Time {
	return iv.Start.AddDate(0, 0, 15)
}

// validateOrdered rejects intervals whose end does not come after the
// start.
func (iv Interval) validateOrdered() error {
	if !iv.Start.Before(iv.End) {
		return ErrInvalidInterval
	}
	return nil
}

// validateLength enforces the per-kind day counts: exactly 7 for weeks,
// a multiple of 7 totalling 4 or 5 weeks for months.
func (iv Interval) validateLength(kind Kind) error {
	days := iv.Days()
	if kind == KindWeek {
		if days != 7 {
			return ErrWrongWeekLength
		}
		return nil
	}
	weeks := days / 7
	if days%7 != 0 || weeks < 4 || weeks > 5 {
		return ErrWrongMonthLength
	}
	return nil
}
