package calendar

import (
	"time"

	"github.com/schedulum-app/schedulum/internal/model"
)

// Directory resolves calendar records by date membership. Lookups
// return (nil, nil) when no record matches; errors are reserved for
// infrastructure failures. db.Store satisfies it.
type Directory interface {
	YearByNumber(number int) (*model.Year, error)

	// Containment lookups: the record whose inclusive interval covers
	// the day.
	MonthContaining(d time.Time) (*model.Month, error)
	WeekContaining(d time.Time) (*model.Week, error)

	// Strict-containment probes used for sibling overlap detection:
	// the record whose interval holds the day strictly between its
	// bounds.
	MonthEnclosingStrict(d time.Time) (*model.Month, error)
	WeekEnclosingStrict(d time.Time) (*model.Week, error)
}

// ResolveMonth validates iv as a month interval and resolves the Year
// it belongs to, identified by the calendar year of the interval
// midpoint. Interval correctness is checked before relational
// correctness: ordering, then length, then parent existence, then
// sibling overlap.
func ResolveMonth(dir Directory, iv Interval) (*model.Year, error) {
	if err := iv.validateOrdered(); err != nil {
		return nil, err
	}
	if err := iv.validateLength(KindMonth); err != nil {
		return nil, err
	}
	year, err := dir.YearByNumber(iv.Midpoint().Year())
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, &MissingParentError{Parent: "year"}
	}
	if err := checkSiblingOverlap(dir, KindMonth, iv); err != nil {
		return nil, err
	}
	return year, nil
}

// ResolveWeek validates iv as a week interval and resolves the Month
// whose interval contains the week's start date. Check order matches
// ResolveMonth.
func ResolveWeek(dir Directory, iv Interval) (*model.Month, error) {
	if err := iv.validateOrdered(); err != nil {
		return nil, err
	}
	if err := iv.validateLength(KindWeek); err != nil {
		return nil, err
	}
	month, err := dir.MonthContaining(iv.Start)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return nil, &MissingParentError{Parent: "month"}
	}
	if err := checkSiblingOverlap(dir, KindWeek, iv); err != nil {
		return nil, err
	}
	return month, nil
}

// ValidateWeekExists is the field-level fast path for schedule dates:
// the date must fall inside some persisted week.
func ValidateWeekExists(dir Directory, d time.Time) error {
	week, err := dir.WeekContaining(d)
	if err != nil {
		return err
	}
	if week == nil {
		return ErrNoSuchWeek
	}
	return nil
}

// checkSiblingOverlap probes whether either boundary of iv falls
// strictly inside a sibling interval of the same kind. Two probes, one
// per boundary; the resulting error names every boundary that hit.
func checkSiblingOverlap(dir Directory, kind Kind, iv Interval) error {
	probe := func(d time.Time) (bool, error) {
		if kind == KindMonth {
			m, err := dir.MonthEnclosingStrict(d)
			return m != nil, err
		}
		w, err := dir.WeekEnclosingStrict(d)
		return w != nil, err
	}

	var boundaries []string
	for _, bound := range []struct {
		name string
		d    time.Time
	}{{"start", iv.Start}, {"end", iv.End}} {
		hit, err := probe(bound.d)
		if err != nil {
			return err
		}
		if hit {
			boundaries = append(boundaries, bound.name)
		}
	}
	if len(boundaries) > 0 {
		return &OverlapError{Boundaries: boundaries}
	}
	return nil
}
