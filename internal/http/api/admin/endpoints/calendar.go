package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/calendar"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/events"
	"github.com/schedulum-app/schedulum/internal/http/api"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/packets"
	"github.com/schedulum-app/schedulum/internal/model"
)

var errTitleTaken = errors.New("title already in use")

type CalendarController struct {
	store  db.Store
	term   calendar.Term
	events *events.Publisher
}

func NewCalendarController(store db.Store, term calendar.Term, publisher *events.Publisher) *CalendarController {
	return &CalendarController{store: store, term: term, events: publisher}
}

func CalendarModule(store db.Store, term calendar.Term, publisher *events.Publisher) api.Module {
	ctl := NewCalendarController(store, term, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		// read side
		c.GET("/calendar", ctl.getCalendar)
		c.GET("/calendar/:year/:month_title/:week_title/days", ctl.listWeekDays)

		// reference data, staff only
		c.POST("/calendar/years", ctl.createYear)
		c.POST("/calendar/months", ctl.createMonth)
		c.POST("/calendar/weeks", ctl.createWeek)
	})
}

func weekResponse(w model.Week) packets.WeekResponse {
	return packets.WeekResponse{
		ID:       w.ID,
		Title:    w.Title,
		StartsOn: w.StartsOn.Format(dateLayout),
		EndsOn:   w.EndsOn.Format(dateLayout),
	}
}

func monthResponse(m model.Month, weeks []model.Week) packets.MonthResponse {
	out := packets.MonthResponse{
		ID:       m.ID,
		Title:    m.Title,
		StartsOn: m.StartsOn.Format(dateLayout),
		EndsOn:   m.EndsOn.Format(dateLayout),
		Weeks:    make([]packets.WeekResponse, 0, len(weeks)),
	}
	for _, w := range weeks {
		out.Weeks = append(out.Weeks, weekResponse(w))
	}
	return out
}

// GET /api/calendar
func (cc *CalendarController) getCalendar(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	years, err := cc.store.ListYears(2)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load calendar"}
	}

	response := packets.CalendarResponse{Years: make([]packets.YearResponse, 0, len(years))}
	for _, y := range years {
		months, err := cc.store.ListMonthsOfYear(y.ID)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load calendar"}
		}

		yr := packets.YearResponse{ID: y.ID, Year: y.Number, Months: make([]packets.MonthResponse, 0, len(months))}
		for _, m := range months {
			weeks, err := cc.store.ListWeeksOfMonth(m.ID)
			if err != nil {
				return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load calendar"}
			}
			yr.Months = append(yr.Months, monthResponse(m, weeks))
		}
		response.Years = append(response.Years, yr)
	}
	return response, nil
}

// GET /api/calendar/:year/:month_title/:week_title/days
//
// Week titles may arrive with literal "%20" sequences left over from
// double-encoded links; they are folded back to spaces before lookup.
func (cc *CalendarController) listWeekDays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	yearNumber, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "year not found"}
	}

	year, err := cc.store.YearByNumber(yearNumber)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "year lookup failed"}
	}
	if year == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "year not found"}
	}

	month, err := cc.store.MonthByTitle(year.ID, ctx.Param("month_title"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "month lookup failed"}
	}
	if month == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "month not found"}
	}

	weekTitle := strings.ReplaceAll(ctx.Param("week_title"), "%20", " ")
	week, err := cc.store.WeekByTitle(month.ID, weekTitle)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "week lookup failed"}
	}
	if week == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "week not found"}
	}

	days := make([]packets.DayResponse, 0, 7)
	for i := 0; i < 7; i++ {
		day := week.StartsOn.AddDate(0, 0, i)
		entry, err := cc.store.ScheduleOnWeekday(user.ID, week.ID, calendar.ProbeWeekday(day))
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load week days"}
		}

		slot := packets.DayResponse{Date: day.Format(dateLayout)}
		if entry != nil {
			sr := scheduleResponse(*entry)
			slot.Schedule = &sr
		}
		days = append(days, slot)
	}

	return packets.DayListResponse{
		Year:  year.Number,
		Month: month.Title,
		Week:  week.Title,
		Days:  days,
	}, nil
}

func requireStaff(user *model.User) *api.APIError {
	if !user.IsStaff {
		return &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return nil
}

// POST /api/calendar/years
func (cc *CalendarController) createYear(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireStaff(user); apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateYearRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	existing, err := cc.store.YearByNumber(request.Year)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "year lookup failed"}
	}
	if existing != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "year already exists"}
	}

	year, err := cc.store.CreateYear(request.Year)
	if err != nil {
		log.Error().Err(err).Int("year", request.Year).Msg("could not create year")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create year"}
	}

	cc.events.CalendarChanged()

	return packets.YearResponse{ID: year.ID, Year: year.Number, Months: []packets.MonthResponse{}}, nil
}

// POST /api/calendar/months
func (cc *CalendarController) createMonth(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireStaff(user); apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateMonthRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startsOn, err := time.Parse(dateLayout, request.StartsOn)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid starts_on"}
	}
	endsOn, err := time.Parse(dateLayout, request.EndsOn)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid ends_on"}
	}

	if err := cc.term.ValidateStartDate(startsOn); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := cc.term.ValidateEndDate(endsOn); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var created model.Month
	err = cc.store.WithinTx(func(tx db.Store) error {
		year, err := calendar.ResolveMonth(tx, calendar.Interval{Start: startsOn, End: endsOn})
		if err != nil {
			return err
		}

		if dup, err := tx.MonthByTitle(year.ID, request.Title); err != nil {
			return err
		} else if dup != nil {
			return errTitleTaken
		}

		created, err = tx.CreateMonth(year.ID, request.Title, startsOn, endsOn)
		return err
	})
	if err != nil {
		if calendar.IsRuleViolation(err) || errors.Is(err, errTitleTaken) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Str("title", request.Title).Msg("could not create month")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create month"}
	}

	cc.events.CalendarChanged()

	return monthResponse(created, nil), nil
}

// POST /api/calendar/weeks
func (cc *CalendarController) createWeek(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if apiErr := requireStaff(user); apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateWeekRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	startsOn, err := time.Parse(dateLayout, request.StartsOn)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid starts_on"}
	}
	endsOn, err := time.Parse(dateLayout, request.EndsOn)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid ends_on"}
	}

	if err := cc.term.ValidateStartDate(startsOn); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := cc.term.ValidateEndDate(endsOn); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var created model.Week
	err = cc.store.WithinTx(func(tx db.Store) error {
		month, err := calendar.ResolveWeek(tx, calendar.Interval{Start: startsOn, End: endsOn})
		if err != nil {
			return err
		}

		if dup, err := tx.WeekByTitle(month.ID, request.Title); err != nil {
			return err
		} else if dup != nil {
			return errTitleTaken
		}

		created, err = tx.CreateWeek(month.ID, request.Title, startsOn, endsOn)
		return err
	})
	if err != nil {
		if calendar.IsRuleViolation(err) || errors.Is(err, errTitleTaken) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Str("title", request.Title).Msg("could not create week")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create week"}
	}

	cc.events.CalendarChanged()

	return weekResponse(created), nil
}
