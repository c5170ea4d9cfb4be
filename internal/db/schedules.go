package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

const scheduleColumns = `id, date, author_id, week_id, repetition_rate, repetition_count, created_at, updated_at`

func (s *pgStore) CreateSchedule(authorID int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error) {
	var sch model.Schedule
	const q = `
	INSERT INTO schedules (date, author_id, week_id, repetition_rate, repetition_count, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, now(), now())
	RETURNING ` + scheduleColumns + `;`
	if err := sqlx.Get(s.ext, &sch, q, date, authorID, weekID, repetitionRate, repetitionCount); err != nil {
		log.Error().Err(err).Msg("CreateSchedule failed")
		return model.Schedule{}, err
	}
	return sch, nil
}

// UpdateSchedule rewrites the date, derived week and repetition rule of
// an entry. The author never changes.
func (s *pgStore) UpdateSchedule(id int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error) {
	var sch model.Schedule
	const q = `
	UPDATE schedules
	   SET date = $2,
	       week_id = $3,
	       repetition_rate = $4,
	       repetition_count = $5,
	       updated_at = now()
	 WHERE id = $1
	RETURNING ` + scheduleColumns + `;`
	if err := sqlx.Get(s.ext, &sch, q, id, date, weekID, repetitionRate, repetitionCount); err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("UpdateSchedule failed")
		return model.Schedule{}, err
	}
	return sch, nil
}

func (s *pgStore) DeleteSchedule(id int) error {
	_, err := s.ext.Exec(`DELETE FROM schedules WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("schedule_id", id).Msg("DeleteSchedule failed")
	}
	return err
}

// GetScheduleForAuthorOnDate is the URL-addressed lookup behind edit
// and delete. Returns sql.ErrNoRows when the author has no entry on
// that date.
func (s *pgStore) GetScheduleForAuthorOnDate(authorID int, date time.Time) (*model.Schedule, error) {
	var sch model.Schedule
	const q = `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE author_id = $1 AND date = $2;`
	if err := sqlx.Get(s.ext, &sch, q, authorID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("GetScheduleForAuthorOnDate failed")
		return nil, err
	}
	return &sch, nil
}

func (s *pgStore) ListSchedulesForAuthor(authorID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE author_id = $1
	 ORDER BY date;`
	if err := sqlx.Select(s.ext, &out, q, authorID); err != nil {
		log.Error().Err(err).Msg("ListSchedulesForAuthor failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) SchedulesForAuthorInWeek(authorID, weekID int) ([]model.Schedule, error) {
	var out []model.Schedule
	const q = `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE author_id = $1 AND week_id = $2
	 ORDER BY date;`
	if err := sqlx.Select(s.ext, &out, q, authorID, weekID); err != nil {
		log.Error().Err(err).Int("week_id", weekID).Msg("SchedulesForAuthorInWeek failed")
		return nil, err
	}
	return out, nil
}

// ScheduleOnWeekday finds the author's entry in a week by its day-of-
// week number, Sunday=1 through Saturday=7 (Postgres DOW plus one).
// Week views and the profile digest pass calendar.ProbeWeekday values
// here; a Sunday probe arrives as 8 and matches nothing.
func (s *pgStore) ScheduleOnWeekday(authorID, weekID, weekday int) (*model.Schedule, error) {
	var sch model.Schedule
	const q = `
	SELECT ` + scheduleColumns + `
	  FROM schedules
	 WHERE author_id = $1
	   AND week_id = $2
	   AND EXTRACT(DOW FROM date)::int + 1 = $3;`
	found, err := getOptional(s.ext, &sch, q, authorID, weekID, weekday)
	if err != nil {
		log.Error().Err(err).Int("week_id", weekID).Int("weekday", weekday).Msg("ScheduleOnWeekday failed")
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &sch, nil
}
