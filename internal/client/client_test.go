package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/", time.Second, zaptest.NewLogger(t))
}

func TestListSchedules(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/schedules/", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "title": "Dentist", "start_time": "2024-03-15T14:30:00Z", "end_time": "2024-03-15T15:30:00Z"},
			{"id": 2, "title": "Broken", "start_time": "garbage"}
		]`)
	})

	events := c.ListSchedules(context.Background())
	require.Len(t, events, 2)
	assert.Equal(t, "Dentist", events[0].Title)
	assert.True(t, events[0].HasStart())
	assert.False(t, events[1].HasStart())
}

func TestListSchedulesSkipsMalformedRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "title": "Dentist", "start_time": "2024-03-15T14:30:00Z"},
			{"id": 2, "title": "Numeric", "start_time": 1710493200, "end_time": {"at": "x"}},
			"not an object",
			{"id": "four", "title": "Bad id"},
			{"id": 5, "title": "Walk", "start_time": "2024-03-16T08:00:00Z"}
		]`)
	})

	events := c.ListSchedules(context.Background())
	require.Len(t, events, 3)
	assert.Equal(t, "Dentist", events[0].Title)
	assert.Equal(t, "Numeric", events[1].Title)
	assert.False(t, events[1].HasStart())
	assert.Nil(t, events[1].EndTime)
	assert.Equal(t, "Walk", events[2].Title)
}

func TestListSchedulesNaiveTimesUseLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id": 1, "title": "Dinner", "start_time": "2024-03-15T20:00:00"}]`)
	}))
	t.Cleanup(srv.Close)
	c := New(srv.URL, time.Second, zaptest.NewLogger(t), WithLocation(loc))

	events := c.ListSchedules(context.Background())
	require.Len(t, events, 1)
	assert.True(t, events[0].StartTime.Equal(time.Date(2024, time.March, 15, 20, 0, 0, 0, loc)))
	assert.Equal(t, model.Date{Year: 2024, Month: time.March, Day: 15}, model.DateOf(events[0].StartTime.In(loc)))
}

func TestListConsumablesSkipsMalformedRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[
			{"id": 1, "name": "Brita", "category": "water_filter", "installation_date": "2024-03-01", "lifetime_days": 30},
			{"id": 2, "name": "Broken", "category": "other", "installation_date": 20240301, "lifetime_days": 30}
		]`)
	})

	items := c.ListConsumables(context.Background())
	require.Len(t, items, 1)
	assert.Equal(t, "Brita", items[0].Name)
}

func TestListSchedulesPaginates(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		n := pageLimit
		if skip > 0 {
			n = 3
		}
		items := make([]model.Event, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, model.Event{ID: int64(skip + i + 1), Title: "e"})
		}
		json.NewEncoder(w).Encode(items)
	})

	events := c.ListSchedules(context.Background())
	assert.Len(t, events, pageLimit+3)
	assert.Equal(t, 2, calls)
}

func TestListSchedulesAbsorbsErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		events := c.ListSchedules(context.Background())
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})

	t.Run("invalid json", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"not": "a list"}`)
		})
		assert.Empty(t, c.ListSchedules(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := New(srv.URL, 100*time.Millisecond, zaptest.NewLogger(t))
		assert.Empty(t, c.ListSchedules(context.Background()))
		assert.Empty(t, c.ListConsumables(context.Background()))
	})

	t.Run("null body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `null`)
		})
		events := c.ListSchedules(context.Background())
		assert.NotNil(t, events)
		assert.Empty(t, events)
	})
}

func TestScheduleCRUD(t *testing.T) {
	start := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/schedules/":
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var in model.EventInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Walk", in.Title)
			assert.True(t, in.StartTime.Equal(start))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprintf(w, `{"id": 7, "title": %q, "start_time": %q, "end_time": %q}`,
				in.Title, in.StartTime.Format(time.RFC3339), in.EndTime.Format(time.RFC3339))
		case r.Method == http.MethodGet && r.URL.Path == "/api/schedules/7":
			io.WriteString(w, `{"id": 7, "title": "Walk", "start_time": "2024-03-15T09:00:00Z"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/schedules/7":
			io.WriteString(w, `{"id": 7, "title": "Run", "start_time": "2024-03-15T09:00:00Z"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/schedules/7":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Schedule not found"}`)
		}
	})
	ctx := context.Background()

	created, err := c.CreateSchedule(ctx, model.EventInput{Title: "Walk", StartTime: start, EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	require.NotNil(t, created.EndTime)
	assert.True(t, created.EndTime.Equal(end))

	got, err := c.GetSchedule(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Walk", got.Title)

	updated, err := c.UpdateSchedule(ctx, 7, model.EventInput{Title: "Run", StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, "Run", updated.Title)

	require.NoError(t, c.DeleteSchedule(ctx, 7))

	_, err = c.GetSchedule(ctx, 8)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Schedule not found")
}

func TestConsumables(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/consumables/":
			io.WriteString(w, `[{"id": 1, "name": "Brita", "category": "water_filter", "installation_date": "2024-01-01", "lifetime_days": 90, "days_remaining": 12}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/consumables/":
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"detail": [{"loc": ["body", "lifetime_days"], "msg": "field required"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	items := c.ListConsumables(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, model.CategoryWaterFilter, items[0].Category)
	assert.Equal(t, model.Date{Year: 2024, Month: time.January, Day: 1}, items[0].InstallationDate)
	assert.Equal(t, 12, items[0].DaysRemaining)

	_, err := c.CreateConsumable(ctx, model.ConsumableInput{Name: "x", Category: model.CategoryOther})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field required")
	assert.False(t, IsNotFound(err))

	_, err = c.CreateConsumable(ctx, model.ConsumableInput{Name: "x", Category: "toaster"})
	assert.ErrorContains(t, err, "unknown category")

	_, err = c.GetConsumable(ctx, 99)
	assert.True(t, IsNotFound(err))
}
