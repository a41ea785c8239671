package common

import (
	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/controller/common/keyboard"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
	"github.com/go-telegram/bot/models"
)

const (
	datePickerDays = 7
	endOptionCount = 6
)

// CalendarKeyboard навигация по месяцам и кнопка дня для выбранной даты
func CalendarKeyboard(v calendar.View) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder().Row(
		keyboard.Button("◀", MonthData(v.Prev().Month)),
		keyboard.Button("Сегодня", CalendarToday),
		keyboard.Button("▶", MonthData(v.Next().Month)),
	)
	if v.Selected != nil && v.Month.Contains(*v.Selected) {
		kb.Row(keyboard.Button("📋 "+formatting.FormatShortDate(*v.Selected), DayData(*v.Selected)))
	}
	return kb.Build()
}

// DatePickerKeyboard ближайшие дни начиная с today
func DatePickerKeyboard(today model.Date) *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, datePickerDays)
	for i := 0; i < datePickerDays; i++ {
		d := today.AddDays(i)
		label := formatting.FormatShortDate(d)
		if i == 0 {
			label = "Сегодня"
		} else if i == 1 {
			label = "Завтра"
		}
		buttons = append(buttons, keyboard.Button(label, EventDateData(d)))
	}
	return keyboard.NewBuilder().
		Chunked(4, buttons...).
		Row(keyboard.CancelButton(EventCancel)).
		Build()
}

// StartKeyboard оставить предложенное время начала
func StartKeyboard(p timeslot.Proposal) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(keyboard.Button("✅ "+formatting.FormatTime(p.Start), EventKeepTime)).
		Row(keyboard.CancelButton(EventCancel)).
		Build()
}

// EndKeyboard варианты окончания от MinimumEnd с шагом 30 минут и "без окончания"
func EndKeyboard(start timeslot.Proposal) *models.InlineKeyboardMarkup {
	options := timeslot.EndOptions(start.Start, endOptionCount)
	buttons := make([]models.InlineKeyboardButton, 0, len(options))
	for _, end := range options {
		buttons = append(buttons, keyboard.Button(formatting.FormatTime(end), EventEndData(end.Sub(start.Start))))
	}
	return keyboard.NewBuilder().
		Chunked(3, buttons...).
		Row(keyboard.Button("Без окончания", EventNoEnd)).
		Row(keyboard.CancelButton(EventCancel)).
		Build()
}
