package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/model"
)

// Префиксы callback data
const (
	CalendarMonth = "cal:"          // cal:2024-03
	CalendarToday = "cal:today"     // возврат к текущему месяцу
	CalendarDay   = "cal_day:"      // cal_day:2024-03-15 - события дня
	EventDate     = "ev_date:"      // ev_date:2024-03-15
	EventKeepTime = "ev_start:keep" // оставить предложенное начало
	EventEnd      = "ev_end:"       // ev_end:90 - минут от начала
	EventNoEnd    = "ev_end:none"   // событие без окончания
	EventCancel   = "ev_cancel"     // прервать диалог
)

func MonthData(m calendar.Month) string {
	return CalendarMonth + m.String()
}

func DayData(d model.Date) string {
	return CalendarDay + d.String()
}

func EventDateData(d model.Date) string {
	return EventDate + d.String()
}

func EventEndData(offset time.Duration) string {
	return EventEnd + strconv.Itoa(int(offset/time.Minute))
}

// ParseMonthData разбирает cal:YYYY-MM
func ParseMonthData(data string) (calendar.Month, error) {
	raw, ok := strings.CutPrefix(data, CalendarMonth)
	if !ok {
		return calendar.Month{}, fmt.Errorf("invalid callback data format")
	}
	return calendar.ParseMonth(raw)
}

// ParseDateData разбирает дату после префикса
func ParseDateData(data, prefix string) (model.Date, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return model.Date{}, fmt.Errorf("invalid callback data format")
	}
	return model.ParseDate(raw)
}

// ParseEndData разбирает ev_end:N; положительный N обязателен
func ParseEndData(data string) (time.Duration, error) {
	raw, ok := strings.CutPrefix(data, EventEnd)
	if !ok {
		return 0, fmt.Errorf("invalid callback data format")
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("invalid end offset %q", raw)
	}
	return time.Duration(minutes) * time.Minute, nil
}
