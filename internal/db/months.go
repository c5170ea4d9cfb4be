package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

const monthColumns = `id, title, starts_on, ends_on, year_id`

func (s *pgStore) CreateMonth(yearID int, title string, startsOn, endsOn time.Time) (model.Month, error) {
	var m model.Month
	const q = `
	INSERT INTO months (title, starts_on, ends_on, year_id)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + monthColumns + `;`
	if err := sqlx.Get(s.ext, &m, q, title, startsOn, endsOn, yearID); err != nil {
		log.Error().Err(err).Str("title", title).Msg("CreateMonth failed")
		return model.Month{}, err
	}
	return m, nil
}

func (s *pgStore) ListMonthsOfYear(yearID int) ([]model.Month, error) {
	var out []model.Month
	const q = `
	SELECT ` + monthColumns + `
	  FROM months
	 WHERE year_id = $1
	 ORDER BY starts_on;`
	if err := sqlx.Select(s.ext, &out, q, yearID); err != nil {
		log.Error().Err(err).Int("year_id", yearID).Msg("ListMonthsOfYear failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) MonthByTitle(yearID int, title string) (*model.Month, error) {
	const q = `
	SELECT ` + monthColumns + `
	  FROM months
	 WHERE year_id = $1 AND title = $2;`
	return s.monthWhere(q, yearID, title)
}

// MonthContaining returns the month whose interval covers d, bounds
// included.
func (s *pgStore) MonthContaining(d time.Time) (*model.Month, error) {
	const q = `
	SELECT ` + monthColumns + `
	  FROM months
	 WHERE starts_on <= $1 AND ends_on >= $1;`
	return s.monthWhere(q, d)
}

// MonthEnclosingStrict returns the month holding d strictly between its
// bounds. Overlap detection probes interval boundaries through this.
func (s *pgStore) MonthEnclosingStrict(d time.Time) (*model.Month, error) {
	const q = `
	SELECT ` + monthColumns + `
	  FROM months
	 WHERE starts_on < $1 AND ends_on > $1;`
	return s.monthWhere(q, d)
}

// monthWhere is the shared single-month lookup; every month query that
// can legitimately come back empty funnels through it.
func (s *pgStore) monthWhere(query string, args ...any) (*model.Month, error) {
	var m model.Month
	found, err := getOptional(s.ext, &m, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("month lookup failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &m, nil
}
