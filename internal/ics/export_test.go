package ics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/schedulum-app/schedulum/internal/ics"
	"github.com/schedulum-app/schedulum/internal/model"
)

func TestExport(t *testing.T) {
	rate, count := 2, 3
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	schedules := []model.Schedule{
		{
			ID:        1,
			Date:      time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			AuthorID:  7,
			WeekID:    1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:              2,
			Date:            time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			AuthorID:        7,
			WeekID:          1,
			RepetitionRate:  &rate,
			RepetitionCount: &count,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	out := ics.Export(schedules, now)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "UID:schedule-1@schedulum")
	assert.Contains(t, out, "UID:schedule-2@schedulum")
	assert.Contains(t, out, "20240102")
	// base occurrence plus three repeats, two weeks apart
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;INTERVAL=2;COUNT=4")
	assert.Equal(t, 1, strings.Count(out, "RRULE"), "plain entries carry no recurrence")
}

func TestExportEmpty(t *testing.T) {
	out := ics.Export(nil, time.Now())
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
