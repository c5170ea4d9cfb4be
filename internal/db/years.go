package db

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

func (s *pgStore) CreateYear(number int) (model.Year, error) {
	var y model.Year
	const q = `
	INSERT INTO years (year)
	VALUES ($1)
	RETURNING id, year;`
	if err := sqlx.Get(s.ext, &y, q, number); err != nil {
		log.Error().Err(err).Int("year", number).Msg("CreateYear failed")
		return model.Year{}, err
	}
	return y, nil
}

// ListYears returns the newest years first. The calendar page shows the
// two most recent ones.
func (s *pgStore) ListYears(limit int) ([]model.Year, error) {
	var out []model.Year
	const q = `
	SELECT id, year
	  FROM years
	 ORDER BY year DESC
	 LIMIT $1;`
	if err := sqlx.Select(s.ext, &out, q, limit); err != nil {
		log.Error().Err(err).Msg("ListYears failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) YearByNumber(number int) (*model.Year, error) {
	var y model.Year
	const q = `SELECT id, year FROM years WHERE year = $1;`
	found, err := getOptional(s.ext, &y, q, number)
	if err != nil {
		log.Error().Err(err).Int("year", number).Msg("YearByNumber failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &y, nil
}
