package timeslot

import (
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
)

// Editor собирает интервал из отдельных правок даты, часа и минут.
// После каждой правки значение округляется, а конец согласуется с началом.
type Editor struct {
	Location *time.Location
	Now      func() time.Time
}

// NewEditor создаёт редактор в локации loc (nil - time.Local)
func NewEditor(loc *time.Location) *Editor {
	if loc == nil {
		loc = time.Local
	}
	return &Editor{Location: loc, Now: time.Now}
}

func (e *Editor) now() time.Time {
	if e.Now == nil {
		return time.Now().In(e.Location)
	}
	return e.Now().In(e.Location)
}

// Defaults интервал нового события: ближайшая получасовая отметка и час длительности
func (e *Editor) Defaults() Proposal {
	start := NextSlot(e.now())
	end := start.Add(DefaultDuration)
	return Proposal{Start: start, End: &end}
}

// SetStart задаёт начало целиком
func (e *Editor) SetStart(p Proposal, t time.Time) Proposal {
	p.Start = Round(t.In(e.Location))
	return e.reconcile(p)
}

// SetEnd задаёт конец целиком
func (e *Editor) SetEnd(p Proposal, t time.Time) Proposal {
	end := Round(t.In(e.Location))
	p.End = &end
	return e.reconcile(p)
}

// ClearEnd убирает конец; при согласовании он станет start+DefaultDuration
func (e *Editor) ClearEnd(p Proposal) Proposal {
	p.End = nil
	return e.reconcile(p)
}

// SetDate меняет дату поля, сохраняя время суток
func (e *Editor) SetDate(p Proposal, f Field, d model.Date) Proposal {
	base := e.current(p, f)
	t := time.Date(d.Year, d.Month, d.Day, base.Hour(), base.Minute(), 0, 0, e.Location)
	return e.set(p, f, t)
}

// SetHour меняет час поля, сохраняя дату и минуты
func (e *Editor) SetHour(p Proposal, f Field, hour int) Proposal {
	base := e.current(p, f)
	t := time.Date(base.Year(), base.Month(), base.Day(), clamp(hour, 0, 23), base.Minute(), 0, 0, e.Location)
	return e.set(p, f, t)
}

// SetMinute меняет минуты поля, сохраняя дату и час
func (e *Editor) SetMinute(p Proposal, f Field, minute int) Proposal {
	base := e.current(p, f)
	t := time.Date(base.Year(), base.Month(), base.Day(), base.Hour(), clamp(minute, 0, 59), 0, 0, e.Location)
	return e.set(p, f, t)
}

// SetClock меняет час и минуты поля одной правкой
func (e *Editor) SetClock(p Proposal, f Field, hour, minute int) Proposal {
	base := e.current(p, f)
	t := time.Date(base.Year(), base.Month(), base.Day(), clamp(hour, 0, 23), clamp(minute, 0, 59), 0, 0, e.Location)
	return e.set(p, f, t)
}

func (e *Editor) set(p Proposal, f Field, t time.Time) Proposal {
	if f == FieldEnd {
		return e.SetEnd(p, t)
	}
	return e.SetStart(p, t)
}

// current текущее значение поля или значение по умолчанию, если поле пустое.
// Для пустого поля дата - сегодня, время суток - из значений по умолчанию.
func (e *Editor) current(p Proposal, f Field) time.Time {
	defaults := e.Defaults()

	start := p.Start
	if !p.HasStart() {
		start = defaults.Start
	}
	if f == FieldStart {
		return start.In(e.Location)
	}

	if p.End != nil {
		return p.End.In(e.Location)
	}
	return start.Add(DefaultDuration).In(e.Location)
}

func (e *Editor) reconcile(p Proposal) Proposal {
	if !p.HasStart() {
		p.Start = e.Defaults().Start
	}
	end := ReconcileEnd(p.Start, p.End)
	p.End = &end
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
