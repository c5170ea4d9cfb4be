package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/schedulum-app/schedulum/internal/calendar"
	"github.com/schedulum-app/schedulum/internal/cache"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/http/api"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/packets"
	"github.com/schedulum-app/schedulum/internal/model"
)

type ProfileController struct {
	store db.Store
	term  calendar.Term
}

func NewProfileController(store db.Store, term calendar.Term) *ProfileController {
	return &ProfileController{store: store, term: term}
}

func ProfileModule(store db.Store, term calendar.Term) api.Module {
	ctl := NewProfileController(store, term)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/profile", ctl.getProfile)
	})
}

// GET /api/profile
//
// The digest is cached per user until a schedule mutation invalidates
// it or the midnight sweep clears it.
func (p *ProfileController) getProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if payload := cache.GetDigest(ctx, user.ID); payload != nil {
		var cached packets.ProfileDigestResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		log.Warn().Int("user", user.ID).Msg("dropping unreadable digest cache entry")
		cache.InvalidateDigest(ctx, user.ID)
	}

	slots := []struct {
		label string
		date  time.Time
	}{
		{"today", p.term.Today},
		{"tomorrow", p.term.Tomorrow},
	}

	days := make([]packets.DigestDayResponse, 0, len(slots))
	for _, slot := range slots {
		entry := packets.DigestDayResponse{Label: slot.label, Date: slot.date.Format(dateLayout)}

		week, err := p.store.WeekContaining(slot.date)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to build digest"}
		}
		if week != nil {
			sched, err := p.store.ScheduleOnWeekday(user.ID, week.ID, calendar.ProbeWeekday(slot.date))
			if err != nil {
				return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to build digest"}
			}
			if sched != nil {
				sr := scheduleResponse(*sched)
				entry.Schedule = &sr
			}
		}
		days = append(days, entry)
	}

	response := packets.ProfileDigestResponse{
		User: packets.ProfileResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
			UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
		},
		Days: days,
	}

	if payload, err := json.Marshal(response); err == nil {
		cache.SetDigest(ctx, user.ID, payload)
	}

	return response, nil
}
