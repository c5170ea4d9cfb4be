package model

import "time"

// Schedule is a user-owned timetable entry pinned to a single date.
// WeekID is derived from the date at validation time, never submitted.
// RepetitionRate (weeks between repeats) and RepetitionCount (number of
// repeats) are either both set or both nil.
type Schedule struct {
	ID              int       `db:"id" json:"id"`
	Date            time.Time `db:"date" json:"date"`
	AuthorID        int       `db:"author_id" json:"author_id"`
	WeekID          int       `db:"week_id" json:"week_id"`
	RepetitionRate  *int      `db:"repetition_rate" json:"repetition_rate"`
	RepetitionCount *int      `db:"repetition_count" json:"repetition_count"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Repeats reports whether the entry carries a complete repetition rule.
func (s Schedule) Repeats() bool {
	return s.RepetitionRate != nil && s.RepetitionCount != nil
}
