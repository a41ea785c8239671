package common

import (
	"testing"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "14:30", want: Clock{Hour: 14, Minute: 30}},
		{in: "1430", want: Clock{Hour: 14, Minute: 30}},
		{in: " 09.00 ", want: Clock{Hour: 9, Minute: 0}},
		{in: "9:00", want: Clock{Hour: 9, Minute: 0}},
		{in: "14:37", want: Clock{Hour: 14, Minute: 30, Rounded: true}},
		{in: "14:46", want: Clock{Hour: 15, Minute: 0, Rounded: true}},
		{in: "23:55", want: Clock{Hour: 23, Minute: 30, Rounded: true}},
		{in: "25:00", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "09:30", Clock{Hour: 9, Minute: 30}.String())
}

func TestCallbackDataRoundTrip(t *testing.T) {
	m := calendar.Month{Year: 2024, Month: time.March}
	data := MonthData(m)
	assert.Equal(t, "cal:2024-03", data)
	got, err := ParseMonthData(data)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	d := model.Date{Year: 2024, Month: time.March, Day: 15}
	parsed, err := ParseDateData(EventDateData(d), EventDate)
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseDateData(DayData(d), EventDate)
	assert.Error(t, err)

	offset, err := ParseEndData(EventEndData(90 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, offset)

	_, err = ParseEndData(EventNoEnd)
	assert.Error(t, err)
	_, err = ParseEndData("ev_end:-30")
	assert.Error(t, err)
}

func TestCalendarKeyboard(t *testing.T) {
	today := model.Date{Year: 2024, Month: time.March, Day: 15}
	kb := CalendarKeyboard(calendar.NewView(today))

	require.Len(t, kb.InlineKeyboard, 2)
	nav := kb.InlineKeyboard[0]
	require.Len(t, nav, 3)
	assert.Equal(t, "cal:2024-02", nav[0].CallbackData)
	assert.Equal(t, CalendarToday, nav[1].CallbackData)
	assert.Equal(t, "cal:2024-04", nav[2].CallbackData)
	assert.Equal(t, "cal_day:2024-03-15", kb.InlineKeyboard[1][0].CallbackData)

	// выбранная дата вне показанного месяца не даёт кнопки дня
	other := calendar.NewView(today).Next()
	assert.Len(t, CalendarKeyboard(other).InlineKeyboard, 1)
}

func TestDatePickerKeyboard(t *testing.T) {
	today := model.Date{Year: 2024, Month: time.February, Day: 27}
	kb := DatePickerKeyboard(today)

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 4)
	assert.Len(t, kb.InlineKeyboard[1], 3)
	assert.Equal(t, "Сегодня", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "ev_date:2024-02-28", kb.InlineKeyboard[0][1].CallbackData)
	assert.Equal(t, "ev_date:2024-03-04", kb.InlineKeyboard[1][2].CallbackData)
	assert.Equal(t, EventCancel, kb.InlineKeyboard[2][0].CallbackData)
}

func TestEndKeyboard(t *testing.T) {
	start := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	kb := EndKeyboard(timeslot.Proposal{Start: start})

	require.Len(t, kb.InlineKeyboard, 4)
	first := kb.InlineKeyboard[0][0]
	assert.Equal(t, "09:30", first.Text)
	assert.Equal(t, "ev_end:30", first.CallbackData)
	last := kb.InlineKeyboard[1][2]
	assert.Equal(t, "12:00", last.Text)
	assert.Equal(t, "ev_end:180", last.CallbackData)
	assert.Equal(t, EventNoEnd, kb.InlineKeyboard[2][0].CallbackData)
}
