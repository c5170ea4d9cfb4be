package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

const weekColumns = `id, title, starts_on, ends_on, month_id`

func (s *pgStore) CreateWeek(monthID int, title string, startsOn, endsOn time.Time) (model.Week, error) {
	var w model.Week
	const q = `
	INSERT INTO weeks (title, starts_on, ends_on, month_id)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + weekColumns + `;`
	if err := sqlx.Get(s.ext, &w, q, title, startsOn, endsOn, monthID); err != nil {
		log.Error().Err(err).Str("title", title).Msg("CreateWeek failed")
		return model.Week{}, err
	}
	return w, nil
}

func (s *pgStore) ListWeeksOfMonth(monthID int) ([]model.Week, error) {
	var out []model.Week
	const q = `
	SELECT ` + weekColumns + `
	  FROM weeks
	 WHERE month_id = $1
	 ORDER BY starts_on;`
	if err := sqlx.Select(s.ext, &out, q, monthID); err != nil {
		log.Error().Err(err).Int("month_id", monthID).Msg("ListWeeksOfMonth failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) WeekByTitle(monthID int, title string) (*model.Week, error) {
	const q = `
	SELECT ` + weekColumns + `
	  FROM weeks
	 WHERE month_id = $1 AND title = $2;`
	return s.weekWhere(q, monthID, title)
}

// WeekContaining returns the week whose interval covers d, bounds
// included.
func (s *pgStore) WeekContaining(d time.Time) (*model.Week, error) {
	const q = `
	SELECT ` + weekColumns + `
	  FROM weeks
	 WHERE starts_on <= $1 AND ends_on >= $1;`
	return s.weekWhere(q, d)
}

// WeekEnclosingStrict returns the week holding d strictly between its
// bounds.
func (s *pgStore) WeekEnclosingStrict(d time.Time) (*model.Week, error) {
	const q = `
	SELECT ` + weekColumns + `
	  FROM weeks
	 WHERE starts_on < $1 AND ends_on > $1;`
	return s.weekWhere(q, d)
}

func (s *pgStore) weekWhere(query string, args ...any) (*model.Week, error) {
	var w model.Week
	found, err := getOptional(s.ext, &w, query, args...)
	if err != nil {
		log.Error().Err(err).Msg("week lookup failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &w, nil
}
