package calendar

import "time"

const sundayIndex = 6

// WeekdayIndex returns the Monday=0..Sunday=6 index of d. Collision
// checks compare schedules by this index, never by raw date.
func WeekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

// ProbeWeekday maps d to the day-of-week number used when querying a
// schedule slot: WeekdayIndex + 2, against stored rows numbered
// Sunday=1..Saturday=7 (the SQL DOW convention plus one). Monday probes
// as 2 and Saturday as 7. A Sunday probe yields 8 and matches nothing;
// schedules never land on Sundays, so Sunday slots always read back
// empty.
func ProbeWeekday(d time.Time) int {
	return WeekdayIndex(d) + 2
}

// IsSunday reports whether d falls on a Sunday.
func IsSunday(d time.Time) bool {
	return WeekdayIndex(d) == sundayIndex
}

// Window is a pair of exclusive bounds marking a non-instructional
// period: a date violates the window when After < date < Before.
type Window struct {
	After  time.Time
	Before time.Time
}

// Excludes reports whether d falls strictly inside the window.
func (w Window) Excludes(d time.Time) bool {
	return d.After(w.After) && d.Before(w.Before)
}

// Term carries the injected academic reference dates: the current and
// next reference days for the profile digest, the first selectable
// month, and the summer vacation windows for the current and the next
// school year. None of these are computed from the wall clock.
type Term struct {
	Today    time.Time
	Tomorrow time.Time

	// CutoffYear/CutoffMonth name the earliest month open for
	// selection; anything before its first day is a past date.
	CutoffYear  int
	CutoffMonth time.Month

	// StartWindows guard dates used as interval starts and schedule
	// dates; EndWindows guard interval ends. Two entries each: the
	// current and the following school year.
	StartWindows []Window
	EndWindows   []Window
}

// ValidateStartDate enforces the start-side date rules: no dates before
// the first of the cutoff month, no dates inside a summer window.
func (t Term) ValidateStartDate(d time.Time) error {
	cutoff := time.Date(t.CutoffYear, t.CutoffMonth, 1, 0, 0, 0, 0, time.UTC)
	if d.Before(cutoff) {
		return ErrPastDate
	}
	for _, w := range t.StartWindows {
		if w.Excludes(d) {
			return ErrVacationDate
		}
	}
	return nil
}

// ValidateEndDate enforces the end-side date rules: interval ends may
// not fall inside a summer window.
func (t Term) ValidateEndDate(d time.Time) error {
	for _, w := range t.EndWindows {
		if w.Excludes(d) {
			return ErrVacationDate
		}
	}
	return nil
}
