package ics

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
)

func TestExport(t *testing.T) {
	start := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	out := Export([]model.Event{
		{ID: 1, Title: "Dentist", Description: "bring card", StartTime: start, EndTime: &end},
		{ID: 2, Title: "Open ended", StartTime: start},
		{ID: 3, Title: "Broken"},
	}, now)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, EventUID(1), first.Id())
	assert.Equal(t, "Dentist", first.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "bring card", first.GetProperty(ical.ComponentPropertyDescription).Value)

	gotStart, err := first.GetStartAt()
	require.NoError(t, err)
	assert.True(t, gotStart.Equal(start))
	gotEnd, err := first.GetEndAt()
	require.NoError(t, err)
	assert.True(t, gotEnd.Equal(end))

	second := events[1]
	assert.Nil(t, second.GetProperty(ical.ComponentPropertyDescription))
	gotEnd, err = second.GetEndAt()
	require.NoError(t, err)
	assert.True(t, gotEnd.Equal(start.Add(timeslot.DefaultDuration)))
}

func TestExportEmpty(t *testing.T) {
	out := Export(nil, time.Now())
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestEventUIDStable(t *testing.T) {
	assert.Equal(t, EventUID(42), EventUID(42))
	assert.NotEqual(t, EventUID(42), EventUID(43))
}

func TestExportUnsavedEventsGetDistinctUIDs(t *testing.T) {
	start := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	drafts := []model.Event{
		{Title: "Walk", StartTime: start},
		{Title: "Walk", StartTime: start.Add(time.Hour)},
		{Title: "Run", StartTime: start},
	}

	cal, err := ical.ParseCalendar(strings.NewReader(Export(drafts, start)))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 3)

	seen := map[string]bool{}
	for _, e := range events {
		assert.NotEqual(t, EventUID(0), e.Id())
		seen[e.Id()] = true
	}
	assert.Len(t, seen, 3)

	again, err := ical.ParseCalendar(strings.NewReader(Export(drafts[:1], start)))
	require.NoError(t, err)
	assert.Equal(t, events[0].Id(), again.Events()[0].Id())
}
