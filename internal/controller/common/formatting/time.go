package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
)

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayShort = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatTime форматирует только время
func FormatTime(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start time.Time, end *time.Time) string {
	if end == nil {
		return start.Format("15:04")
	}
	if model.DateOf(*end) != model.DateOf(start) {
		return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("02.01 15:04"))
	}
	return fmt.Sprintf("%s-%s", start.Format("15:04"), end.Format("15:04"))
}

// FormatDate дата вида "15.03.2024 (Пт)"
func FormatDate(d model.Date) string {
	return fmt.Sprintf("%02d.%02d.%04d (%s)", d.Day, int(d.Month), d.Year, weekdayShort[d.Weekday()])
}

// FormatShortDate дата для кнопок: "Пт 15.03"
func FormatShortDate(d model.Date) string {
	return fmt.Sprintf("%s %02d.%02d", weekdayShort[d.Weekday()], d.Day, int(d.Month))
}

// MonthTitle название месяца с годом: "Март 2024"
func MonthTitle(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d-%02d", year, int(month))
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}
