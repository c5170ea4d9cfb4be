package model

import "time"

// Year is the root of the academic calendar hierarchy. Years are
// reference data maintained by staff, never by regular users.
type Year struct {
	ID     int `db:"id" json:"id"`
	Number int `db:"year" json:"year"`
}

// Month is a 4- or 5-week interval belonging to a Year. StartsOn and
// EndsOn are inclusive civil dates stored at UTC midnight.
type Month struct {
	ID       int       `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	StartsOn time.Time `db:"starts_on" json:"starts_on"`
	EndsOn   time.Time `db:"ends_on" json:"ends_on"`
	YearID   int       `db:"year_id" json:"year_id"`
}

// Week is a 7-day interval belonging to a Month.
type Week struct {
	ID       int       `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	StartsOn time.Time `db:"starts_on" json:"starts_on"`
	EndsOn   time.Time `db:"ends_on" json:"ends_on"`
	MonthID  int       `db:"month_id" json:"month_id"`
}
