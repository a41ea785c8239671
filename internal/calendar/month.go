// Package calendar строит сетку месяца для отображения событий.
package calendar

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
)

// Month отображаемый месяц
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf месяц, содержащий t (в локации t)
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOfDate месяц, содержащий дату d
func MonthOfDate(d model.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth разбирает месяц в формате YYYY-MM
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// First первый день месяца
func (m Month) First() model.Date {
	return model.Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Last последний день месяца
func (m Month) Last() model.Date {
	// нулевой день следующего месяца - последний день текущего
	return model.DateOf(time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC))
}

// Contains принадлежит ли дата этому месяцу
func (m Month) Contains(d model.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Advance возвращает месяц, сдвинутый на delta месяцев
func (m Month) Advance(delta int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC))
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// View состояние навигации по календарю, которым владеет вызывающий код.
// Все операции возвращают новое значение.
type View struct {
	Month    Month
	Selected *model.Date
}

// NewView вид на месяц today с выбранной датой today
func NewView(today model.Date) View {
	return View{}.JumpToToday(today)
}

// Next следующий месяц, выбранная дата сохраняется
func (v View) Next() View {
	v.Month = v.Month.Advance(1)
	return v
}

// Prev предыдущий месяц, выбранная дата сохраняется
func (v View) Prev() View {
	v.Month = v.Month.Advance(-1)
	return v
}

// JumpToToday переходит к месяцу today и выбирает today
func (v View) JumpToToday(today model.Date) View {
	selected := today
	return View{Month: MonthOfDate(today), Selected: &selected}
}

// Select выбирает дату, не меняя месяц
func (v View) Select(d model.Date) View {
	selected := d
	v.Selected = &selected
	return v
}
