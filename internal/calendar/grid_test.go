package calendar

import (
	"testing"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) model.Date {
	return model.Date{Year: y, Month: m, Day: d}
}

func TestBuildMarch2024(t *testing.T) {
	b := NewBuilder(time.UTC)
	grid := b.Build(Month{Year: 2024, Month: time.March}, nil, nil, date(2024, time.March, 15))

	require.Len(t, grid.Cells, 42)
	assert.Equal(t, date(2024, time.February, 25), grid.Start())
	assert.Equal(t, date(2024, time.April, 6), grid.End())
	assert.Len(t, grid.Weeks(), 6)

	for _, cell := range grid.Cells {
		assert.Equal(t, cell.Date.Month == time.March, cell.IsCurrentMonth, cell.Date.String())
		assert.Equal(t, cell.Date == date(2024, time.March, 15), cell.IsToday, cell.Date.String())
		assert.False(t, cell.IsSelected, "nothing selected, got %s", cell.Date)
	}
}

func TestBuildBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		month Month
		start model.Date
		end   model.Date
		cells int
	}{
		// 1 февраля 2015 - воскресенье, 28 февраля - суббота
		{name: "exact four weeks", month: Month{2015, time.February}, start: date(2015, time.February, 1), end: date(2015, time.February, 28), cells: 28},
		// 1 сентября 2024 - воскресенье
		{name: "starts on sunday", month: Month{2024, time.September}, start: date(2024, time.September, 1), end: date(2024, time.October, 5), cells: 35},
		// 30 ноября 2024 - суббота
		{name: "ends on saturday", month: Month{2024, time.November}, start: date(2024, time.October, 27), end: date(2024, time.November, 30), cells: 35},
		{name: "year boundary", month: Month{2024, time.December}, start: date(2024, time.December, 1), end: date(2025, time.January, 4), cells: 35},
		{name: "six weeks", month: Month{2023, time.December}, start: date(2023, time.November, 26), end: date(2024, time.January, 6), cells: 42},
	}

	b := NewBuilder(time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := b.Build(tt.month, nil, nil, date(2000, time.January, 1))
			assert.Equal(t, tt.start, grid.Start())
			assert.Equal(t, tt.end, grid.End())
			assert.Len(t, grid.Cells, tt.cells)
		})
	}
}

func TestBuildAllMonthsShape(t *testing.T) {
	b := NewBuilder(time.UTC)
	month := Month{Year: 2020, Month: time.January}

	for i := 0; i < 12*30; i++ {
		grid := b.Build(month, nil, nil, date(2020, time.January, 1))

		require.Zero(t, len(grid.Cells)%7, month.String())
		assert.Equal(t, time.Sunday, grid.Start().Weekday(), month.String())
		assert.Equal(t, time.Saturday, grid.End().Weekday(), month.String())

		for j, cell := range grid.Cells {
			assert.Equal(t, month.Contains(cell.Date), cell.IsCurrentMonth)
			if j > 0 {
				assert.Equal(t, grid.Cells[j-1].Date.AddDays(1), cell.Date)
			}
		}

		month = month.Advance(1)
	}
}

func TestBuildAttachesEvents(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	b := NewBuilder(loc)

	at := func(d, h, m int) time.Time {
		return time.Date(2024, time.March, d, h, m, 0, 0, loc)
	}
	events := []model.Event{
		{ID: 1, Title: "late", StartTime: at(15, 18, 0)},
		{ID: 2, Title: "no start"},
		{ID: 3, Title: "early", StartTime: at(15, 9, 0)},
		// 16:30 UTC 15 марта - это уже 16 марта по локальному времени
		{ID: 4, Title: "utc", StartTime: time.Date(2024, time.March, 15, 16, 30, 0, 0, time.UTC)},
		{ID: 5, Title: "filler", StartTime: at(1, 0, 0).AddDate(0, 0, -3)},
		{ID: 6, Title: "outside", StartTime: at(1, 0, 0).AddDate(0, 2, 0)},
	}

	grid := b.Build(Month{2024, time.March}, events, nil, date(2024, time.March, 1))

	cell, ok := grid.Cell(date(2024, time.March, 15))
	require.True(t, ok)
	require.Len(t, cell.Events, 2)
	assert.Equal(t, int64(1), cell.Events[0].ID, "input order is kept")
	assert.Equal(t, int64(3), cell.Events[1].ID)

	cell, _ = grid.Cell(date(2024, time.March, 16))
	require.Len(t, cell.Events, 1)
	assert.Equal(t, int64(4), cell.Events[0].ID)

	cell, _ = grid.Cell(date(2024, time.February, 27))
	require.Len(t, cell.Events, 1)
	assert.False(t, cell.IsCurrentMonth)

	// каждое событие с началом внутри сетки встречается ровно один раз
	seen := map[int64]int{}
	for _, c := range grid.Cells {
		for _, e := range c.Events {
			seen[e.ID]++
		}
	}
	assert.Equal(t, map[int64]int{1: 1, 3: 1, 4: 1, 5: 1}, seen)
}

func TestBuildSelected(t *testing.T) {
	b := NewBuilder(time.UTC)
	selected := date(2024, time.April, 2)

	grid := b.Build(Month{2024, time.March}, nil, &selected, date(2024, time.March, 1))

	cell, ok := grid.Selected()
	require.True(t, ok)
	assert.Equal(t, selected, cell.Date)
	assert.False(t, cell.IsCurrentMonth)

	count := 0
	for _, c := range grid.Cells {
		if c.IsSelected {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEventsOn(t *testing.T) {
	b := NewBuilder(time.UTC)
	events := []model.Event{
		{ID: 1, StartTime: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 2, StartTime: time.Date(2024, time.March, 16, 9, 0, 0, 0, time.UTC)},
	}

	got := b.EventsOn(date(2024, time.March, 15), events)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Empty(t, b.EventsOn(date(2024, time.March, 17), events))
}
