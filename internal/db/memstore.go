package db

import (
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/schedulum-app/schedulum/internal/model"
)

// MemStore is an in-memory Store for handler tests. It mirrors the SQL
// implementation's conventions: keyed getters return sql.ErrNoRows,
// optional lookups return (nil, nil), and the columns carrying unique
// constraints reject duplicates.
type MemStore struct {
	mu sync.Mutex

	nextUserID     int
	nextYearID     int
	nextMonthID    int
	nextWeekID     int
	nextScheduleID int

	users     []model.User
	years     []model.Year
	months    []model.Month
	weeks     []model.Week
	schedules []model.Schedule
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{}
}

// WithinTx runs fn against the store itself. MemStore offers no
// rollback; tests that need a failed transaction inject the failure
// before the write happens.
func (m *MemStore) WithinTx(fn func(Store) error) error {
	return fn(m)
}

func (m *MemStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return 0, errors.New("duplicate email")
		}
	}
	m.nextUserID++
	now := time.Now()
	m.users = append(m.users, model.User{
		ID:             m.nextUserID,
		Email:          email,
		HashedPassword: hashedPassword,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return m.nextUserID, nil
}

func (m *MemStore) GetUserByEmail(email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemStore) GetUserByID(id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemStore) UpdateUserProfile(id int, email string, name *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Email = email
			m.users[i].Name = name
			m.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("no such user")
}

// PromoteToStaff flags an existing user as staff. In production the
// flag is set directly in the database; tests need a programmatic way.
func (m *MemStore) PromoteToStaff(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].IsStaff = true
			return
		}
	}
}

func (m *MemStore) CreateYear(number int) (model.Year, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, y := range m.years {
		if y.Number == number {
			return model.Year{}, errors.New("duplicate year")
		}
	}
	m.nextYearID++
	y := model.Year{ID: m.nextYearID, Number: number}
	m.years = append(m.years, y)
	return y, nil
}

func (m *MemStore) ListYears(limit int) ([]model.Year, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.Year{}, m.years...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) YearByNumber(number int) (*model.Year, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.years {
		if m.years[i].Number == number {
			y := m.years[i]
			return &y, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateMonth(yearID int, title string, startsOn, endsOn time.Time) (model.Month, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextMonthID++
	month := model.Month{ID: m.nextMonthID, Title: title, StartsOn: startsOn, EndsOn: endsOn, YearID: yearID}
	m.months = append(m.months, month)
	return month, nil
}

func (m *MemStore) ListMonthsOfYear(yearID int) ([]model.Month, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Month
	for _, month := range m.months {
		if month.YearID == yearID {
			out = append(out, month)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsOn.Before(out[j].StartsOn) })
	return out, nil
}

func (m *MemStore) MonthByTitle(yearID int, title string) (*model.Month, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.months {
		if m.months[i].YearID == yearID && m.months[i].Title == title {
			month := m.months[i]
			return &month, nil
		}
	}
	return nil, nil
}

func (m *MemStore) MonthContaining(d time.Time) (*model.Month, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.months {
		if !d.Before(m.months[i].StartsOn) && !d.After(m.months[i].EndsOn) {
			month := m.months[i]
			return &month, nil
		}
	}
	return nil, nil
}

func (m *MemStore) MonthEnclosingStrict(d time.Time) (*model.Month, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.months {
		if m.months[i].StartsOn.Before(d) && m.months[i].EndsOn.After(d) {
			month := m.months[i]
			return &month, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateWeek(monthID int, title string, startsOn, endsOn time.Time) (model.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextWeekID++
	week := model.Week{ID: m.nextWeekID, Title: title, StartsOn: startsOn, EndsOn: endsOn, MonthID: monthID}
	m.weeks = append(m.weeks, week)
	return week, nil
}

func (m *MemStore) ListWeeksOfMonth(monthID int) ([]model.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Week
	for _, week := range m.weeks {
		if week.MonthID == monthID {
			out = append(out, week)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsOn.Before(out[j].StartsOn) })
	return out, nil
}

func (m *MemStore) WeekByTitle(monthID int, title string) (*model.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.weeks {
		if m.weeks[i].MonthID == monthID && m.weeks[i].Title == title {
			week := m.weeks[i]
			return &week, nil
		}
	}
	return nil, nil
}

func (m *MemStore) WeekContaining(d time.Time) (*model.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.weeks {
		if !d.Before(m.weeks[i].StartsOn) && !d.After(m.weeks[i].EndsOn) {
			week := m.weeks[i]
			return &week, nil
		}
	}
	return nil, nil
}

func (m *MemStore) WeekEnclosingStrict(d time.Time) (*model.Week, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.weeks {
		if m.weeks[i].StartsOn.Before(d) && m.weeks[i].EndsOn.After(d) {
			week := m.weeks[i]
			return &week, nil
		}
	}
	return nil, nil
}

func (m *MemStore) CreateSchedule(authorID int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.schedules {
		if s.AuthorID == authorID && s.Date.Equal(date) {
			return model.Schedule{}, errors.New("duplicate schedule date")
		}
	}
	m.nextScheduleID++
	now := time.Now()
	sch := model.Schedule{
		ID:              m.nextScheduleID,
		Date:            date,
		AuthorID:        authorID,
		WeekID:          weekID,
		RepetitionRate:  repetitionRate,
		RepetitionCount: repetitionCount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.schedules = append(m.schedules, sch)
	return sch, nil
}

func (m *MemStore) UpdateSchedule(id int, date time.Time, weekID int, repetitionRate, repetitionCount *int) (model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			m.schedules[i].Date = date
			m.schedules[i].WeekID = weekID
			m.schedules[i].RepetitionRate = repetitionRate
			m.schedules[i].RepetitionCount = repetitionCount
			m.schedules[i].UpdatedAt = time.Now()
			return m.schedules[i], nil
		}
	}
	return model.Schedule{}, sql.ErrNoRows
}

func (m *MemStore) DeleteSchedule(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemStore) GetScheduleForAuthorOnDate(authorID int, date time.Time) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].AuthorID == authorID && m.schedules[i].Date.Equal(date) {
			sch := m.schedules[i]
			return &sch, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemStore) ListSchedulesForAuthor(authorID int) ([]model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Schedule
	for _, s := range m.schedules {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *MemStore) SchedulesForAuthorInWeek(authorID, weekID int) ([]model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Schedule
	for _, s := range m.schedules {
		if s.AuthorID == authorID && s.WeekID == weekID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ScheduleOnWeekday matches the SQL probe: day numbers run Sunday=1
// through Saturday=7, so a Sunday-probe value of 8 finds nothing.
func (m *MemStore) ScheduleOnWeekday(authorID, weekID, weekday int) (*model.Schedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		s := m.schedules[i]
		if s.AuthorID == authorID && s.WeekID == weekID && int(s.Date.Weekday())+1 == weekday {
			sch := s
			return &sch, nil
		}
	}
	return nil, nil
}
