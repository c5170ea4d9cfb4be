package endpoints_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/packets"
)

func TestGetCalendar(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	_, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	w := doRequest(t, router, http.MethodGet, "/api/calendar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.CalendarResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Years, 1)
	assert.Equal(t, 2024, resp.Years[0].Year)
	require.Len(t, resp.Years[0].Months, 1)

	month := resp.Years[0].Months[0]
	assert.Equal(t, "January", month.Title)
	assert.Equal(t, "2024-01-01", month.StartsOn)
	assert.Equal(t, "2024-01-28", month.EndsOn)
	require.Len(t, month.Weeks, 4)
	assert.Equal(t, "Week 1", month.Weeks[0].Title)
	assert.Equal(t, "2024-01-22", month.Weeks[3].StartsOn)
}

func TestGetCalendarShowsTwoNewestYears(t *testing.T) {
	store := db.NewMemStore()
	for _, n := range []int{2023, 2024, 2025} {
		_, err := store.CreateYear(n)
		require.NoError(t, err)
	}
	_, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	w := doRequest(t, router, http.MethodGet, "/api/calendar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.CalendarResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Years, 2)
	assert.Equal(t, 2025, resp.Years[0].Year)
	assert.Equal(t, 2024, resp.Years[1].Year)
}

func TestDayList(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	_, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/schedules", token, gin.H{"date": "2024-01-02"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/calendar/2024/January/Week%201/days", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.DayListResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, "January", resp.Month)
	assert.Equal(t, "Week 1", resp.Week)
	require.Len(t, resp.Days, 7)

	assert.Equal(t, "2024-01-01", resp.Days[0].Date)
	assert.Nil(t, resp.Days[0].Schedule)

	require.NotNil(t, resp.Days[1].Schedule)
	assert.Equal(t, "2024-01-02", resp.Days[1].Schedule.Date)

	// the Sunday slot is listed but can never hold a schedule
	assert.Equal(t, "2024-01-07", resp.Days[6].Date)
	assert.Nil(t, resp.Days[6].Schedule)
}

func TestDayListTitleWithLiteralEscape(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	_, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	// double-encoded links arrive with a literal %20 in the title
	w := doRequest(t, router, http.MethodGet, "/api/calendar/2024/January/Week%25201/days", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp packets.DayListResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Week 1", resp.Week)
}

func TestDayListNotFound(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	_, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	for _, path := range []string{
		"/api/calendar/20x4/January/Week%201/days",
		"/api/calendar/2030/January/Week%201/days",
		"/api/calendar/2024/March/Week%201/days",
		"/api/calendar/2024/January/Week%209/days",
	} {
		w := doRequest(t, router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestCreateYearRequiresStaff(t *testing.T) {
	store := db.NewMemStore()
	id, token := seedUser(t, store, "user@example.com")
	router := newRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/calendar/years", token, gin.H{"year": 2030})
	require.Equal(t, http.StatusForbidden, w.Code)

	store.PromoteToStaff(id)

	w = doRequest(t, router, http.MethodPost, "/api/calendar/years", token, gin.H{"year": 2030})
	require.Equal(t, http.StatusOK, w.Code)

	var created packets.YearResponse
	decodeBody(t, w, &created)
	assert.Equal(t, 2030, created.Year)
	assert.Empty(t, created.Months)

	w = doRequest(t, router, http.MethodPost, "/api/calendar/years", token, gin.H{"year": 2030})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreateMonth(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	id, token := seedUser(t, store, "staff@example.com")
	store.PromoteToStaff(id)
	router := newRouter(store)

	// the four-week block right after January
	w := doRequest(t, router, http.MethodPost, "/api/calendar/months", token, gin.H{
		"title":     "February",
		"starts_on": "2024-01-29",
		"ends_on":   "2024-02-25",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created packets.MonthResponse
	decodeBody(t, w, &created)
	assert.Equal(t, "February", created.Title)
	assert.Equal(t, "2024-01-29", created.StartsOn)
	assert.Empty(t, created.Weeks)

	cases := []struct {
		name    string
		payload gin.H
		wantMsg string
	}{
		{
			"overlaps both neighbours",
			gin.H{"title": "Overlap", "starts_on": "2024-01-22", "ends_on": "2024-02-18"},
			"start and end",
		},
		{
			"too short",
			gin.H{"title": "Short", "starts_on": "2024-01-29", "ends_on": "2024-02-11"},
			"4 or 5",
		},
		{
			"no year covers it",
			gin.H{"title": "Far", "starts_on": "2031-01-06", "ends_on": "2031-02-02"},
			"year",
		},
		{
			"vacation dates",
			gin.H{"title": "Summer", "starts_on": "2024-07-08", "ends_on": "2024-08-04"},
			"school months",
		},
		{
			"duplicate title",
			gin.H{"title": "February", "starts_on": "2024-02-26", "ends_on": "2024-03-24"},
			"already in use",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/calendar/months", token, tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantMsg)
		})
	}
}

func TestCreateWeek(t *testing.T) {
	store := db.NewMemStore()
	seedJanuary(t, store)
	id, token := seedUser(t, store, "staff@example.com")
	store.PromoteToStaff(id)
	router := newRouter(store)

	w := doRequest(t, router, http.MethodPost, "/api/calendar/months", token, gin.H{
		"title":     "February",
		"starts_on": "2024-01-29",
		"ends_on":   "2024-02-25",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/calendar/weeks", token, gin.H{
		"title":     "Week 5",
		"starts_on": "2024-01-29",
		"ends_on":   "2024-02-04",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created packets.WeekResponse
	decodeBody(t, w, &created)
	assert.Equal(t, "Week 5", created.Title)
	assert.Equal(t, "2024-01-29", created.StartsOn)
	assert.Equal(t, "2024-02-04", created.EndsOn)

	cases := []struct {
		name    string
		payload gin.H
		wantMsg string
	}{
		{
			"eight days",
			gin.H{"title": "Fat Week", "starts_on": "2024-02-05", "ends_on": "2024-02-12"},
			"exactly 7",
		},
		{
			"no month covers it",
			gin.H{"title": "Nowhere", "starts_on": "2024-03-04", "ends_on": "2024-03-10"},
			"month",
		},
		{
			"straddles two weeks",
			gin.H{"title": "Skewed", "starts_on": "2024-01-03", "ends_on": "2024-01-09"},
			"start and end",
		},
		{
			"duplicate title",
			gin.H{"title": "Week 5", "starts_on": "2024-02-05", "ends_on": "2024-02-11"},
			"already in use",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/api/calendar/weeks", token, tc.payload)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantMsg)
		})
	}

	// reference data stays read-only for regular accounts
	_, plainToken := seedUser(t, store, "plain@example.com")
	w = doRequest(t, router, http.MethodPost, "/api/calendar/weeks", plainToken, gin.H{
		"title":     "Week 6",
		"starts_on": "2024-02-05",
		"ends_on":   "2024-02-11",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
