package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/schedulum-app/schedulum/internal/model"
)

// Export renders a user's schedule entries as an iCalendar feed.
// Entries are all-day events. A repetition rule becomes an RRULE whose
// COUNT covers the base occurrence plus every repeat, so a schedule
// repeated c times at a rate of r weeks serializes as
// FREQ=WEEKLY;INTERVAL=r;COUNT=c+1.
func Export(schedules []model.Schedule, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//schedulum//schedule export//EN")

	for _, s := range schedules {
		event := cal.AddEvent(fmt.Sprintf("schedule-%d@schedulum", s.ID))
		event.SetDtStampTime(now)
		event.SetCreatedTime(s.CreatedAt)
		event.SetModifiedAt(s.UpdatedAt)
		event.SetSummary("School day")
		event.SetAllDayStartAt(s.Date)
		// all-day DTEND is exclusive
		event.SetAllDayEndAt(s.Date.AddDate(0, 0, 1))
		if s.Repeats() {
			event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;INTERVAL=%d;COUNT=%d",
				*s.RepetitionRate, *s.RepetitionCount+1))
		}
	}
	return cal.Serialize()
}
