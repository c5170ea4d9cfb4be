package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/model"
)

// Store is the persistence interface handed to API modules. It also
// satisfies calendar.Directory and calendar.ScheduleIndex, so the
// validation core runs against the same store the handlers use.
//
// Lookup conventions: *Containing, *EnclosingStrict, *ByTitle,
// YearByNumber and ScheduleOnWeekday return (nil, nil) when nothing
// matches; GetUserBy*, GetScheduleForAuthorOnDate return sql.ErrNoRows.
type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// calendar hierarchy
	CreateYear(number int) (model.Year, error)
	ListYears(limit int) ([]model.Year, error)
	YearByNumber(number int) (*model.Year, error)

	CreateMonth(yearID int, title string, startsOn, endsOn time.Time) (model.Month, error)
	ListMonthsOfYear(yearID int) ([]model.Month, error)
	MonthByTitle(yearID int, title string) (*model.Month, error)
	MonthContaining(d time.Time) (*model.Month, error)
	MonthEnclosingStrict(d time.Time) (*model.Month, error)

	CreateWeek(monthID int, title string, startsOn, endsOn time.Time) (model.Week, error)
	ListWeeksOfMonth(monthID int) ([]model.Week, error)
	WeekByTitle(monthID int, title string) (*model.Week, error)
	WeekContaining(d time.Time) (*model.Week, error)
	WeekEnclosingStrict(d time.Time) (*model.Week, error)

	// schedule functions
	CreateSchedule(authorID int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error)
	UpdateSchedule(id int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error)
	DeleteSchedule(id int) error
	GetScheduleForAuthorOnDate(authorID int, date time.Time) (*model.Schedule, error)
	ListSchedulesForAuthor(authorID int) ([]model.Schedule, error)
	SchedulesForAuthorInWeek(authorID, weekID int) ([]model.Schedule, error)
	ScheduleOnWeekday(authorID, weekID, weekday int) (*model.Schedule, error)

	// WithinTx runs fn against a transaction-bound Store and commits
	// when fn returns nil. Validation and the write it guards share the
	// transaction, so two racing submissions cannot both pass.
	WithinTx(fn func(Store) error) error
}

// pgStore runs every query through ext, which is either the shared
// *sqlx.DB or a *sqlx.Tx handed out by WithinTx.
type pgStore struct {
	ext sqlx.Ext
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	return &pgStore{ext: database}
}

func (s *pgStore) WithinTx(fn func(Store) error) error {
	database, ok := s.ext.(*sqlx.DB)
	if !ok {
		// already transaction-bound, run fn on the same one
		return fn(s)
	}

	tx, err := database.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")
		return err
	}

	if err := fn(&pgStore{ext: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
		return err
	}
	return tx.Commit()
}

// getOptional runs a single-row query where an empty result is a valid
// answer, not an error.
func getOptional(ext sqlx.Ext, dest any, query string, args ...any) (bool, error) {
	err := sqlx.Get(ext, dest, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
