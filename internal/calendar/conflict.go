package calendar

import (
	"time"

	"github.com/schedulum-app/schedulum/internal/model"
)

// ScheduleIndex exposes the schedule lookups the conflict checker
// needs. db.Store satisfies it.
type ScheduleIndex interface {
	SchedulesForAuthorInWeek(authorID, weekID int) ([]model.Schedule, error)
}

// Candidate is a schedule submission under validation. ExcludeID is the
// primary key of the record being edited, so that an update does not
// collide with itself; zero means nothing is excluded.
type Candidate struct {
	Date            time.Time
	AuthorID        int
	RepetitionRate  *int
	RepetitionCount *int
	ExcludeID       int
}

func (c Candidate) repeats() bool {
	return c.RepetitionRate != nil && c.RepetitionCount != nil
}

// ConflictChecker validates candidate schedules against the calendar
// hierarchy and the author's existing entries.
type ConflictChecker struct {
	dir   Directory
	index ScheduleIndex
}

func NewConflictChecker(dir Directory, index ScheduleIndex) *ConflictChecker {
	return &ConflictChecker{dir: dir, index: index}
}

// Check runs the full rule set and returns the week the candidate's
// base date falls into, for persisting on the schedule row:
//
//  1. every target week (repeats first, base week last) must exist;
//  2. the date may not be a Sunday;
//  3. repetition fields must be set together or not at all;
//  4. no schedule of the same author in any target week may share the
//     candidate's weekday, the edited record itself excepted.
//
// A repetition that maps back onto the base week is not special-cased:
// it then collides with the base entry through the weekday rule.
func (c *ConflictChecker) Check(cand Candidate) (*model.Week, error) {
	weeks, err := c.targetWeeks(cand)
	if err != nil {
		return nil, err
	}
	for _, week := range weeks {
		if week == nil {
			return nil, ErrNoSuchWeek
		}
	}
	if IsSunday(cand.Date) {
		return nil, ErrNonSchoolDay
	}
	if (cand.RepetitionRate == nil) != (cand.RepetitionCount == nil) {
		return nil, ErrIncompleteRepetition
	}

	weekday := WeekdayIndex(cand.Date)
	for _, week := range weeks {
		existing, err := c.index.SchedulesForAuthorInWeek(cand.AuthorID, week.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range existing {
			if WeekdayIndex(s.Date) != weekday {
				continue
			}
			if cand.ExcludeID != 0 && s.ID == cand.ExcludeID {
				continue
			}
			return nil, ErrScheduleCollision
		}
	}
	return weeks[len(weeks)-1], nil
}

// targetWeeks expands the candidate to the weeks it touches: the week
// of date + 7*rate*k for k = 1..count when a complete repetition rule
// is present, then the week of the base date appended last. Entries are
// nil where no week covers the target date.
func (c *ConflictChecker) targetWeeks(cand Candidate) ([]*model.Week, error) {
	var weeks []*model.Week
	if cand.repeats() {
		step := 7 * *cand.RepetitionRate
		for repeat := 1; repeat <= *cand.RepetitionCount; repeat++ {
			week, err := c.dir.WeekContaining(cand.Date.AddDate(0, 0, step*repeat))
			if err != nil {
				return nil, err
			}
			weeks = append(weeks, week)
		}
	}
	base, err := c.dir.WeekContaining(cand.Date)
	if err != nil {
		return nil, err
	}
	return append(weeks, base), nil
}
