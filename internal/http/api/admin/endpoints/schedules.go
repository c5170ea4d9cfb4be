package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/calendar"
	"github.com/schedulum-app/schedulum/internal/cache"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/events"
	"github.com/schedulum-app/schedulum/internal/http/api"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/packets"
	"github.com/schedulum-app/schedulum/internal/http/middleware"
	"github.com/schedulum-app/schedulum/internal/ics"
	"github.com/schedulum-app/schedulum/internal/model"
)

const dateLayout = "2006-01-02"

type ScheduleController struct {
	store  db.Store
	term   calendar.Term
	events *events.Publisher
}

func NewScheduleController(store db.Store, term calendar.Term, publisher *events.Publisher) *ScheduleController {
	return &ScheduleController{store: store, term: term, events: publisher}
}

func ScheduleModule(store db.Store, term calendar.Term, publisher *events.Publisher) api.Module {
	ctl := NewScheduleController(store, term, publisher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.PUT("/schedules/:date", ctl.updateSchedule)
		c.DELETE("/schedules/:date", ctl.deleteSchedule)

		// file download, bypasses the JSON resolver
		c.RAW_GET("/schedules/export.ics", ctl.exportSchedules)
	})
}

func scheduleResponse(sc model.Schedule) packets.ScheduleResponse {
	return packets.ScheduleResponse{
		ID:              sc.ID,
		Date:            sc.Date.Format(dateLayout),
		WeekID:          sc.WeekID,
		RepetitionRate:  sc.RepetitionRate,
		RepetitionCount: sc.RepetitionCount,
		CreatedAt:       sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       sc.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/schedules
func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSchedulesForAuthor(user.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}

	response := make([]packets.ScheduleResponse, 0, len(list))
	for _, it := range list {
		response = append(response, scheduleResponse(it))
	}
	return response, nil
}

// GET /api/schedules/export.ics
func (s *ScheduleController) exportSchedules(ctx *gin.Context) {
	user, ok := middleware.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := s.store.ListSchedulesForAuthor(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list schedules"})
		return
	}

	payload := ics.Export(list, time.Now().UTC())
	ctx.Header("Content-Disposition", `attachment; filename="schedules.ics"`)
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(payload))
}

// POST /api/schedules
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	date, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date"}
	}

	if apiErr := s.validateScheduleDate(date); apiErr != nil {
		return nil, apiErr
	}

	var created model.Schedule
	err = s.store.WithinTx(func(tx db.Store) error {
		checker := calendar.NewConflictChecker(tx, tx)
		week, err := checker.Check(calendar.Candidate{
			Date:            date,
			AuthorID:        user.ID,
			RepetitionRate:  request.RepetitionRate,
			RepetitionCount: request.RepetitionCount,
		})
		if err != nil {
			return err
		}
		created, err = tx.CreateSchedule(user.ID, date, week.ID, request.RepetitionRate, request.RepetitionCount)
		return err
	})
	if err != nil {
		if calendar.IsRuleViolation(err) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Msg("could not create schedule")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}

	cache.InvalidateDigest(ctx, user.ID)
	s.events.ScheduleChanged(events.ScheduleCreated, user.ID, created.Date)

	return scheduleResponse(created), nil
}

// PUT /api/schedules/:date
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	target, err := time.Parse(dateLayout, ctx.Param("date"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	existing, err := s.store.GetScheduleForAuthorOnDate(user.ID, target)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	var request packets.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	date, err := time.Parse(dateLayout, request.Date)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid date"}
	}

	if apiErr := s.validateScheduleDate(date); apiErr != nil {
		return nil, apiErr
	}

	var updated model.Schedule
	err = s.store.WithinTx(func(tx db.Store) error {
		checker := calendar.NewConflictChecker(tx, tx)
		week, err := checker.Check(calendar.Candidate{
			Date:            date,
			AuthorID:        user.ID,
			RepetitionRate:  request.RepetitionRate,
			RepetitionCount: request.RepetitionCount,
			ExcludeID:       existing.ID,
		})
		if err != nil {
			return err
		}
		updated, err = tx.UpdateSchedule(existing.ID, date, week.ID, request.RepetitionRate, request.RepetitionCount)
		return err
	})
	if err != nil {
		if calendar.IsRuleViolation(err) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Msg("could not update schedule")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	cache.InvalidateDigest(ctx, user.ID)
	s.events.ScheduleChanged(events.ScheduleUpdated, user.ID, updated.Date)

	return scheduleResponse(updated), nil
}

// DELETE /api/schedules/:date
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	target, err := time.Parse(dateLayout, ctx.Param("date"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	existing, err := s.store.GetScheduleForAuthorOnDate(user.ID, target)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}

	if err := s.store.DeleteSchedule(existing.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}

	cache.InvalidateDigest(ctx, user.ID)
	s.events.ScheduleChanged(events.ScheduleDeleted, user.ID, existing.Date)

	return gin.H{"message": "deleted"}, nil
}

// validateScheduleDate applies the date-only rules. These run before
// the conflict checker, so a date outside the calendar never reaches
// the collision queries.
func (s *ScheduleController) validateScheduleDate(date time.Time) *api.APIError {
	if err := s.term.ValidateStartDate(date); err != nil {
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := calendar.ValidateWeekExists(s.store, date); err != nil {
		if calendar.IsRuleViolation(err) {
			return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
		log.Error().Err(err).Msg("week lookup failed")
		return &api.APIError{Code: http.StatusInternalServerError, Message: "could not validate date"}
	}
	return nil
}
