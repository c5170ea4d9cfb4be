package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// Rule violations are recoverable user errors: handlers surface them as
// 400-level form messages, never as server faults.
var (
	ErrInvalidInterval      = errors.New("the interval must end after it starts")
	ErrWrongWeekLength      = errors.New("a week must contain exactly 7 days")
	ErrWrongMonthLength     = errors.New("a month must contain 4 or 5 whole weeks")
	ErrOverlappingInterval  = errors.New("interval overlaps an existing one")
	ErrMissingParent        = errors.New("required parent record does not exist")
	ErrNoSuchWeek           = errors.New("no week covers the requested date")
	ErrNonSchoolDay         = errors.New("Sunday is not a school day")
	ErrIncompleteRepetition = errors.New("repetition requires both a rate and a count")
	ErrScheduleCollision    = errors.New("the schedule or one of its repeats lands on the day of another schedule")
	ErrPastDate             = errors.New("dates before the current month are not available")
	ErrVacationDate         = errors.New("July and August are not school months")
)

// OverlapError reports which boundaries of a candidate interval fall
// strictly inside a sibling interval. Boundaries holds "start", "end",
// or both, in that order.
type OverlapError struct {
	Boundaries []string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("interval %s falls inside an existing interval", strings.Join(e.Boundaries, " and "))
}

func (e *OverlapError) Unwrap() error { return ErrOverlappingInterval }

// MissingParentError names the parent record that has to exist before
// the candidate can be saved ("year" for months, "month" for weeks).
type MissingParentError struct {
	Parent string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("create a %s covering this interval first", e.Parent)
}

func (e *MissingParentError) Unwrap() error { return ErrMissingParent }

var ruleViolations = []error{
	ErrInvalidInterval,
	ErrWrongWeekLength,
	ErrWrongMonthLength,
	ErrOverlappingInterval,
	ErrMissingParent,
	ErrNoSuchWeek,
	ErrNonSchoolDay,
	ErrIncompleteRepetition,
	ErrScheduleCollision,
	ErrPastDate,
	ErrVacationDate,
}

// IsRuleViolation reports whether err is one of the calendar rule
// violations, as opposed to an infrastructure failure.
func IsRuleViolation(err error) bool {
	for _, rule := range ruleViolations {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}
