package state

import (
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Шаги диалога /addevent
	StateAddEventTitle       UserState = "add_event_title"
	StateAddEventDescription UserState = "add_event_description"
	StateAddEventDate        UserState = "add_event_date"
	StateAddEventStart       UserState = "add_event_start"
	StateAddEventEnd         UserState = "add_event_end"
	// событие отправлено в API, повторные нажатия игнорируются
	StateAddEventSubmitting UserState = "add_event_submitting"
)

// EventDraft событие, собираемое в диалоге
type EventDraft struct {
	EventID     int64 // не 0 - редактирование сохранённого события
	Title       string
	Description string
	Date        model.Date
	Interval    timeslot.Proposal
}

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Draft EventDraft
}

// Editing черновик редактирует существующее событие
func (d EventDraft) Editing() bool {
	return d.EventID != 0
}
