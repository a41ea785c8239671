// Package timeslot нормализует и проверяет интервалы событий
// с шагом в полчаса.
package timeslot

import (
	"errors"
	"time"
)

const (
	// Granularity шаг допустимых значений времени
	Granularity = 30 * time.Minute
	// MinDuration минимальная длительность события
	MinDuration = 30 * time.Minute
	// DefaultDuration длительность события, если конец не задан
	DefaultDuration = 60 * time.Minute
)

var (
	ErrNotOnBoundary    = errors.New("must be on a 30-minute boundary")
	ErrEndNotAfterStart = errors.New("end must be after start")
)

// Round приводит время к ближайшей получасовой отметке:
// минуты 0-15 -> :00, 16-45 -> :30, 46-59 -> :00 следующего часа.
// Секунды и доли секунды обнуляются.
func Round(t time.Time) time.Time {
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())

	switch m := t.Minute(); {
	case m <= 15:
		return hour
	case m <= 45:
		return hour.Add(30 * time.Minute)
	default:
		return hour.Add(time.Hour)
	}
}

// OnBoundary лежит ли время ровно на получасовой отметке
func OnBoundary(t time.Time) bool {
	m := t.Minute()
	return (m == 0 || m == 30) && t.Second() == 0 && t.Nanosecond() == 0
}

// ValidateGranularity возвращает ErrNotOnBoundary для времени вне сетки
func ValidateGranularity(t time.Time) error {
	if !OnBoundary(t) {
		return ErrNotOnBoundary
	}
	return nil
}

// ValidateOrdering проверяет, что конец строго позже начала.
// Событие без конца допустимо.
func ValidateOrdering(start time.Time, end *time.Time) error {
	if end == nil || end.After(start) {
		return nil
	}
	return ErrEndNotAfterStart
}

// ReconcileEnd возвращает согласованный конец события:
// без конца - start+DefaultDuration, конец не позже начала - start+MinDuration.
func ReconcileEnd(start time.Time, end *time.Time) time.Time {
	if end == nil {
		return start.Add(DefaultDuration)
	}
	if !end.After(start) {
		return MinimumEnd(start)
	}
	return *end
}

// MinimumEnd самый ранний допустимый конец для start
func MinimumEnd(start time.Time) time.Time {
	return start.Add(MinDuration)
}

// EndOptions n вариантов конца, начиная с MinimumEnd, с шагом Granularity
func EndOptions(start time.Time, n int) []time.Time {
	options := make([]time.Time, 0, n)
	end := MinimumEnd(start)
	for i := 0; i < n; i++ {
		options = append(options, end)
		end = end.Add(Granularity)
	}
	return options
}

// NextSlot ближайшая получасовая отметка для нового события:
// до :30 включительно - :30 того же часа, иначе :00 следующего.
func NextSlot(now time.Time) time.Time {
	hour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if now.Minute() <= 30 {
		return hour.Add(30 * time.Minute)
	}
	return hour.Add(time.Hour)
}

// EndAt первый момент строго после start с временем суток hour:minute.
// Введённое 00:30 при начале 22:30 даёт 00:30 следующего дня.
func EndAt(start time.Time, hour, minute int) time.Time {
	end := time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, start.Location())
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
