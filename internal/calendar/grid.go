package calendar

import (
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
)

const daysInWeek = 7

// DayCell ячейка сетки календаря
type DayCell struct {
	Date           model.Date
	IsCurrentMonth bool // false для дней соседних месяцев, дополняющих неделю
	IsToday        bool
	IsSelected     bool
	Events         []model.Event
}

// Grid сетка месяца из полных недель, с воскресенья по субботу
type Grid struct {
	Month Month
	Cells []DayCell
}

// Builder строит сетки месяцев.
// Дата события определяется по его началу в локации Location.
type Builder struct {
	Location *time.Location
}

// NewBuilder создаёт построитель для указанной локации (nil - time.Local)
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{Location: loc}
}

// Build строит сетку от воскресенья до первого числа month включительно
// до субботы после последнего числа включительно. Длина сетки кратна 7
// и не дополняется до фиксированных шести недель.
// События без времени начала пропускаются.
func (b *Builder) Build(month Month, events []model.Event, selected *model.Date, today model.Date) Grid {
	first := month.First()
	last := month.Last()

	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))

	byDate := b.groupByDate(events)

	cells := make([]DayCell, 0, start.DaysUntil(end)+1)
	for d := start; !end.Before(d); d = d.AddDays(1) {
		cells = append(cells, DayCell{
			Date:           d,
			IsCurrentMonth: month.Contains(d),
			IsToday:        d.Equal(today),
			IsSelected:     selected != nil && d.Equal(*selected),
			Events:         byDate[d],
		})
	}

	return Grid{Month: month, Cells: cells}
}

// BuildView строит сетку для состояния навигации v
func (b *Builder) BuildView(v View, events []model.Event, today model.Date) Grid {
	return b.Build(v.Month, events, v.Selected, today)
}

// EventsOn события, начинающиеся в дату d, в исходном порядке
func (b *Builder) EventsOn(d model.Date, events []model.Event) []model.Event {
	return b.groupByDate(events)[d]
}

// groupByDate раскладывает события по локальной дате начала, сохраняя порядок
func (b *Builder) groupByDate(events []model.Event) map[model.Date][]model.Event {
	loc := b.Location
	if loc == nil {
		loc = time.Local
	}

	byDate := make(map[model.Date][]model.Event)
	for _, event := range events {
		if !event.HasStart() {
			continue
		}
		d := model.DateOf(event.StartTime.In(loc))
		byDate[d] = append(byDate[d], event)
	}
	return byDate
}

// Start первая дата сетки
func (g Grid) Start() model.Date {
	if len(g.Cells) == 0 {
		return model.Date{}
	}
	return g.Cells[0].Date
}

// End последняя дата сетки
func (g Grid) End() model.Date {
	if len(g.Cells) == 0 {
		return model.Date{}
	}
	return g.Cells[len(g.Cells)-1].Date
}

// Weeks разбивает сетку на строки по 7 дней
func (g Grid) Weeks() [][]DayCell {
	weeks := make([][]DayCell, 0, len(g.Cells)/daysInWeek)
	for i := 0; i+daysInWeek <= len(g.Cells); i += daysInWeek {
		weeks = append(weeks, g.Cells[i:i+daysInWeek])
	}
	return weeks
}

// Cell ищет ячейку даты d
func (g Grid) Cell(d model.Date) (DayCell, bool) {
	for _, cell := range g.Cells {
		if cell.Date.Equal(d) {
			return cell, true
		}
	}
	return DayCell{}, false
}

// Selected выбранная ячейка, если она есть в сетке
func (g Grid) Selected() (DayCell, bool) {
	for _, cell := range g.Cells {
		if cell.IsSelected {
			return cell, true
		}
	}
	return DayCell{}, false
}
