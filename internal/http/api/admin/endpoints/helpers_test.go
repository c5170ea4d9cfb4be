package endpoints_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/schedulum-app/schedulum/internal/calendar"
	"github.com/schedulum-app/schedulum/internal/db"
	"github.com/schedulum-app/schedulum/internal/http/api"
	"github.com/schedulum-app/schedulum/internal/http/api/admin/endpoints"
	"github.com/schedulum-app/schedulum/internal/http/middleware"
)

const testSecret = "handler-test-secret"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// term for all handler tests: the reference days sit in the second week
// of January 2024.
func testTerm() calendar.Term {
	return calendar.Term{
		Today:       date(2024, time.January, 10),
		Tomorrow:    date(2024, time.January, 11),
		CutoffYear:  2024,
		CutoffMonth: time.January,
		StartWindows: []calendar.Window{
			{After: date(2024, time.June, 30), Before: date(2024, time.September, 1)},
			{After: date(2025, time.June, 30), Before: date(2025, time.September, 1)},
		},
		EndWindows: []calendar.Window{
			{After: date(2024, time.July, 1), Before: date(2024, time.September, 2)},
			{After: date(2025, time.July, 1), Before: date(2025, time.September, 2)},
		},
	}
}

// seedJanuary loads one school year: January 2024 split into four
// Monday-first weeks, Jan 1 through Jan 28.
func seedJanuary(t *testing.T, store db.Store) {
	t.Helper()

	year, err := store.CreateYear(2024)
	require.NoError(t, err)

	month, err := store.CreateMonth(year.ID, "January", date(2024, time.January, 1), date(2024, time.January, 28))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		start := date(2024, time.January, 1+7*i)
		_, err := store.CreateWeek(month.ID, fmt.Sprintf("Week %d", i+1), start, start.AddDate(0, 0, 6))
		require.NoError(t, err)
	}
}

func newRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	term := testTerm()

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		endpoints.AuthPublicModule(testSecret, store),
	)
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: testSecret,
		Store:     store,
	},
		endpoints.AuthSessionModule(testSecret, store),
		endpoints.CalendarModule(store, term, nil),
		endpoints.ScheduleModule(store, term, nil),
		endpoints.ProfileModule(store, term),
	)
	return r
}

// seedUser inserts a user with the password "testpassword" and returns
// its id plus a valid bearer token.
func seedUser(t *testing.T, store db.Store, email string) (int, string) {
	t.Helper()

	hashed, err := middleware.HashPassword("testpassword")
	require.NoError(t, err)

	id, err := store.CreateUser(email, hashed, nil)
	require.NoError(t, err)

	token, err := middleware.GenerateJWT(id, testSecret)
	require.NoError(t, err)

	return id, token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
