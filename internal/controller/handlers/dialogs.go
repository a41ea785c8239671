package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/household_bot/internal/client"
	"github.com/Freeeeeet/household_bot/internal/controller/common"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/controller/state"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// время начала по умолчанию при выборе даты
const defaultStartHour = 9

// HandleAddEventStart начинает диалог создания события
func (h *Handlers) HandleAddEventStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.stateManager.Start(update.Message.From.ID, state.StateAddEventTitle)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"➕ <b>Новое событие</b>\n\nВведите название.\n\n/cancel - отменить")
}

// HandleEditEventStart начинает редактирование события: /editevent 42.
// Диалог проходит те же шаги, «-» оставляет текущее значение.
func (h *Handlers) HandleEditEventStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, err := strconv.ParseInt(commandArg(update.Message.Text), 10, 64)
	if err != nil || id <= 0 {
		h.sendError(ctx, b, chatID, "❌ Укажите номер события: /editevent 42")
		return
	}

	event, err := h.scheduleService.Get(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Событие #%d не найдено.", id))
			return
		}
		h.logger.Error("Failed to load event", zap.Int64("event_id", id), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить событие. Попробуйте позже.")
		return
	}

	draft := state.EventDraft{
		EventID:     event.ID,
		Title:       event.Title,
		Description: event.Description,
	}
	if event.HasStart() {
		draft.Date = model.DateOf(event.StartTime)
		draft.Interval = timeslot.Proposal{Start: event.StartTime, End: event.EndTime}
	}
	h.stateManager.StartWith(update.Message.From.ID, state.StateAddEventTitle, draft)

	h.sendMessage(ctx, b, chatID,
		"✏️ <b>Редактирование</b>\n\n"+formatting.FormatEvent(*event)+
			"\n\nВведите новое название или «-», чтобы оставить текущее.\n\n/cancel - отменить")
}

func (h *Handlers) handleEventTitle(ctx context.Context, b *bot.Bot, msg *models.Message) {
	title := strings.TrimSpace(msg.Text)
	draft, _ := h.stateManager.Draft(msg.From.ID)
	keep := draft.Editing() && title == skipInput

	if !keep && (title == "" || utf8.RuneCountInString(title) > EventTitleMaxLength) {
		h.sendError(ctx, b, msg.Chat.ID, fmt.Sprintf("❌ Название должно быть от 1 до %d символов.", EventTitleMaxLength))
		return
	}

	h.stateManager.Transition(msg.From.ID, state.StateAddEventTitle, state.StateAddEventDescription, func(d *state.EventDraft) {
		if !keep {
			d.Title = title
		}
	})
	if draft.Editing() {
		h.sendMessage(ctx, b, msg.Chat.ID, "📝 Введите новое описание или «-», чтобы оставить текущее.")
		return
	}
	h.sendMessage(ctx, b, msg.Chat.ID, "📝 Введите описание или «-», чтобы пропустить.")
}

func (h *Handlers) handleEventDescription(ctx context.Context, b *bot.Bot, msg *models.Message) {
	description := strings.TrimSpace(msg.Text)
	draft, _ := h.stateManager.Draft(msg.From.ID)
	keep := draft.Editing() && description == skipInput
	if description == skipInput {
		description = ""
	}
	if utf8.RuneCountInString(description) > EventDescriptionMaxLength {
		h.sendError(ctx, b, msg.Chat.ID, fmt.Sprintf("❌ Описание не длиннее %d символов.", EventDescriptionMaxLength))
		return
	}

	h.stateManager.Transition(msg.From.ID, state.StateAddEventDescription, state.StateAddEventDate, func(d *state.EventDraft) {
		if !keep {
			d.Description = description
		}
	})

	from := h.scheduleService.Today()
	if draft.Editing() && !draft.Date.IsZero() {
		from = draft.Date
	}
	h.sendMessage(ctx, b, msg.Chat.ID,
		"📅 Выберите дату или введите её в формате ГГГГ-ММ-ДД.",
		common.DatePickerKeyboard(from))
}

func (h *Handlers) handleEventDate(ctx context.Context, b *bot.Bot, msg *models.Message) {
	d, err := parseUserDate(msg.Text)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Неверная дата. Пример: 2024-03-15 или 15.03.2024")
		return
	}
	h.ApplyDate(ctx, b, msg.Chat.ID, msg.From.ID, d)
}

// parseUserDate принимает ГГГГ-ММ-ДД и ДД.ММ.ГГГГ
func parseUserDate(s string) (model.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := model.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		return model.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return model.DateOf(t), nil
}

// ApplyDate ставит дату начала. Если начало ещё не выбрано, время - 09:00.
// Дату можно сменить и на шаге выбора времени начала.
func (h *Handlers) ApplyDate(ctx context.Context, b *bot.Bot, chatID, telegramID int64, d model.Date) {
	editor := h.scheduleService.Editor()
	loc := h.scheduleService.Location()

	var interval timeslot.Proposal
	apply := func(dr *state.EventDraft) {
		dr.Date = d
		if dr.Interval.HasStart() {
			dr.Interval = editor.SetDate(dr.Interval, timeslot.FieldStart, d)
		} else {
			dr.Interval = editor.SetStart(dr.Interval, time.Date(d.Year, d.Month, d.Day, defaultStartHour, 0, 0, 0, loc))
		}
		interval = dr.Interval
	}
	ok := h.stateManager.Transition(telegramID, state.StateAddEventDate, state.StateAddEventStart, apply) ||
		h.stateManager.Transition(telegramID, state.StateAddEventStart, state.StateAddEventStart, apply)
	if !ok {
		h.sendError(ctx, b, chatID, "❌ Нет активного диалога. Начните с /addevent")
		return
	}

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("📅 %s\n\n🕐 Введите время начала (ЧЧ:ММ, кратно 30 минутам) или оставьте предложенное.",
			formatting.FormatDate(d)),
		common.StartKeyboard(interval))
}

func (h *Handlers) handleEventStart(ctx context.Context, b *bot.Bot, msg *models.Message) {
	clock, err := common.ParseClock(msg.Text)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Неверное время. Пример: 14:30")
		return
	}

	editor := h.scheduleService.Editor()
	var interval timeslot.Proposal
	ok := h.stateManager.Transition(msg.From.ID, state.StateAddEventStart, state.StateAddEventEnd, func(dr *state.EventDraft) {
		dr.Interval = editor.SetClock(dr.Interval, timeslot.FieldStart, clock.Hour, clock.Minute)
		interval = dr.Interval
	})
	if !ok {
		return
	}

	note := ""
	if clock.Rounded {
		note = fmt.Sprintf("Время округлено до %s.\n", clock)
	}
	h.promptEnd(ctx, b, msg.Chat.ID, interval, note)
}

// KeepStart оставляет предложенное время начала
func (h *Handlers) KeepStart(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	var interval timeslot.Proposal
	ok := h.stateManager.Transition(telegramID, state.StateAddEventStart, state.StateAddEventEnd, func(dr *state.EventDraft) {
		interval = dr.Interval
	})
	if !ok {
		h.sendError(ctx, b, chatID, "❌ Этот шаг уже пройден.")
		return
	}
	h.promptEnd(ctx, b, chatID, interval, "")
}

func (h *Handlers) promptEnd(ctx context.Context, b *bot.Bot, chatID int64, interval timeslot.Proposal, note string) {
	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("%s🕐 Начало: %s\n\n⏱ Выберите окончание, введите его (ЧЧ:ММ) или «-», если окончания нет.",
			note, formatting.FormatDateTime(interval.Start)),
		common.EndKeyboard(interval))
}

func (h *Handlers) handleEventEnd(ctx context.Context, b *bot.Bot, msg *models.Message) {
	if strings.TrimSpace(msg.Text) == skipInput {
		h.ApplyEnd(ctx, b, msg.Chat.ID, msg.From.ID, nil)
		return
	}

	clock, err := common.ParseClock(msg.Text)
	if err != nil {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Неверное время. Пример: 15:30")
		return
	}

	draft, ok := h.stateManager.Draft(msg.From.ID)
	if !ok {
		return
	}
	offset, note := h.resolveEnd(draft.Interval, clock)
	h.applyEnd(ctx, b, msg.Chat.ID, msg.From.ID, &offset, note)
}

// resolveEnd переводит введённое время окончания в смещение от начала.
// Окончание - ближайший момент после начала с этим временем суток,
// поэтому 00:30 при начале 22:30 относится к следующему дню.
func (h *Handlers) resolveEnd(p timeslot.Proposal, clock common.Clock) (time.Duration, string) {
	typed := timeslot.EndAt(p.Start, clock.Hour, clock.Minute)
	interval := h.scheduleService.Editor().SetEnd(p, typed)

	note := ""
	switch {
	case !interval.End.Equal(typed):
		note = fmt.Sprintf("Окончание должно быть позже начала, установлено %s.\n",
			formatting.FormatDateTime(*interval.End))
	case clock.Rounded:
		note = fmt.Sprintf("Время окончания округлено до %s.\n", clock)
	}
	if !model.DateOf(interval.End.Add(-time.Nanosecond)).Equal(model.DateOf(interval.Start)) {
		note += fmt.Sprintf("Окончание на следующий день: %s.\n", formatting.FormatDateTime(*interval.End))
	}
	return interval.End.Sub(interval.Start), note
}

// ApplyEnd задаёт окончание как смещение от начала (nil - без окончания)
// и отправляет событие в API.
func (h *Handlers) ApplyEnd(ctx context.Context, b *bot.Bot, chatID, telegramID int64, offset *time.Duration) {
	h.applyEnd(ctx, b, chatID, telegramID, offset, "")
}

func (h *Handlers) applyEnd(ctx context.Context, b *bot.Bot, chatID, telegramID int64, offset *time.Duration, note string) {
	var draft state.EventDraft
	ok := h.stateManager.Transition(telegramID, state.StateAddEventEnd, state.StateAddEventSubmitting, func(dr *state.EventDraft) {
		dr.Interval.End = nil
		if offset != nil {
			end := dr.Interval.Start.Add(*offset)
			dr.Interval.End = &end
		}
		draft = *dr
	})
	if !ok {
		if h.stateManager.GetState(telegramID) == state.StateAddEventSubmitting {
			h.sendError(ctx, b, chatID, "⏳ Событие уже сохраняется.")
			return
		}
		h.sendError(ctx, b, chatID, "❌ Нет активного диалога. Начните с /addevent")
		return
	}

	h.submitEvent(ctx, b, chatID, telegramID, draft, note)
}

func (h *Handlers) submitEvent(ctx context.Context, b *bot.Bot, chatID, telegramID int64, draft state.EventDraft, note string) {
	var (
		event *model.Event
		err   error
	)
	if draft.Editing() {
		event, err = h.scheduleService.Update(ctx, draft.EventID, draft.Title, draft.Description, draft.Interval)
	} else {
		event, err = h.scheduleService.Create(ctx, draft.Title, draft.Description, draft.Interval)
	}

	var fieldErrs timeslot.FieldErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		// возвращаем к выбору начала, черновик сохраняется
		h.release(telegramID, state.StateAddEventStart)
		h.sendMessage(ctx, b, chatID,
			formatting.FormatFieldErrors(fieldErrs)+"\n\n🕐 Введите время начала заново.",
			common.StartKeyboard(draft.Interval))
		return
	case errors.Is(err, service.ErrEmptyTitle):
		h.release(telegramID, state.StateAddEventTitle)
		h.sendError(ctx, b, chatID, "❌ Название не может быть пустым. Введите название.")
		return
	case draft.Editing() && client.IsNotFound(err):
		h.release(telegramID, state.StateNone)
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Событие #%d уже удалено.", draft.EventID))
		return
	default:
		h.logger.Error("Failed to save event",
			zap.Int64("telegram_id", telegramID),
			zap.Int64("event_id", draft.EventID),
			zap.String("title", draft.Title),
			zap.Error(err),
		)
		h.release(telegramID, state.StateAddEventEnd)
		h.sendError(ctx, b, chatID, "❌ Не удалось сохранить событие. Выберите окончание ещё раз или /cancel.")
		return
	}

	h.release(telegramID, state.StateNone)
	header := "✅ Событие создано!"
	if draft.Editing() {
		header = "✅ Событие обновлено!"
	}
	h.sendMessage(ctx, b, chatID,
		note+header+"\n\n"+formatting.FormatEvent(*event)+
			"\n\n/calendar - календарь, /day "+html.EscapeString(model.DateOf(event.StartTime).String())+" - события дня")
}

// release выводит диалог из отправки; после /cancel во время запроса ничего не делает
func (h *Handlers) release(telegramID int64, next state.UserState) {
	h.stateManager.Transition(telegramID, state.StateAddEventSubmitting, next, nil)
}
