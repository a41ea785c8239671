package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/client"
	"github.com/Freeeeeet/household_bot/internal/controller/common"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/controller/state"
	"github.com/Freeeeeet/household_bot/internal/ics"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Commands команда -> обработчик
func (h *Handlers) Commands() map[string]bot.HandlerFunc {
	return map[string]bot.HandlerFunc{
		"/start":       h.HandleStart,
		"/help":        h.HandleHelp,
		"/calendar":    h.HandleCalendar,
		"/day":         h.HandleDay,
		"/addevent":    h.HandleAddEventStart,
		"/editevent":   h.HandleEditEventStart,
		"/delete":      h.HandleDelete,
		"/consumables": h.HandleConsumables,

		"/addconsumable":   h.HandleAddConsumable,
		"/renewconsumable": h.HandleRenewConsumable,
		"/delconsumable":   h.HandleDeleteConsumable,

		"/subscribe":   h.HandleSubscribe,
		"/unsubscribe": h.HandleUnsubscribe,
		"/export":      h.HandleExport,
		"/cancel":      h.HandleCancel,
	}
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	msg := update.Message
	name := msg.Chat.FirstName
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}

	if _, err := h.chatService.Register(ctx, msg.Chat.ID, msg.Chat.Username, name); err != nil {
		h.logger.Error("Failed to register chat", zap.Int64("chat_id", msg.Chat.ID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Я помогаю вести домашний календарь и следить за сроком службы фильтров.\n\n"+
			"/calendar - Календарь на месяц\n"+
			"/addevent - Новое событие\n"+
			"/consumables - Расходники\n"+
			"/subscribe - Уведомления о замене\n"+
			"/help - Справка",
		name,
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/calendar [ГГГГ-ММ] - Календарь на месяц\n" +
		"/day [ГГГГ-ММ-ДД] - События дня\n" +
		"/addevent - Добавить событие\n" +
		"/editevent &lt;id&gt; - Изменить событие\n" +
		"/delete &lt;id&gt; - Удалить событие\n" +
		"/export - Выгрузить события в .ics\n\n" +
		"/consumables - Расходники и оставшийся срок\n" +
		"/addconsumable - Добавить расходник\n" +
		"/renewconsumable &lt;id&gt; - Отметить замену\n" +
		"/delconsumable &lt;id&gt; - Удалить расходник\n" +
		"/subscribe - Включить уведомления о замене\n" +
		"/unsubscribe - Выключить уведомления\n\n" +
		"/cancel - Отменить текущий диалог\n\n" +
		"Время событий кратно 30 минутам, другое значение будет округлено."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCalendar показывает месяц: /calendar или /calendar 2024-03
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	view := calendar.NewView(h.scheduleService.Today())
	if arg := commandArg(update.Message.Text); arg != "" {
		month, err := calendar.ParseMonth(arg)
		if err != nil {
			h.sendError(ctx, b, chatID, "❌ Неверный месяц. Формат: /calendar 2024-03")
			return
		}
		view.Month = month
	}

	if err := common.SendMonth(ctx, b, h.scheduleService, chatID, view, h.logger); err != nil {
		h.logger.Error("Failed to show calendar", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleDay события дня: /day или /day 2024-03-15
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	day := h.scheduleService.Today()
	if arg := commandArg(update.Message.Text); arg != "" {
		d, err := model.ParseDate(arg)
		if err != nil {
			h.sendError(ctx, b, chatID, "❌ Неверная дата. Формат: /day 2024-03-15")
			return
		}
		day = d
	}

	h.SendAgenda(ctx, b, chatID, day)
}

// SendAgenda отправляет список событий дня
func (h *Handlers) SendAgenda(ctx context.Context, b *bot.Bot, chatID int64, day model.Date) {
	events := h.scheduleService.DayAgenda(ctx, day)
	h.sendMessage(ctx, b, chatID, formatting.FormatAgenda(day, events))
}

// HandleDelete удаляет событие: /delete 42
func (h *Handlers) HandleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, err := strconv.ParseInt(commandArg(update.Message.Text), 10, 64)
	if err != nil || id <= 0 {
		h.sendError(ctx, b, chatID, "❌ Укажите номер события: /delete 42")
		return
	}

	event, err := h.scheduleService.Delete(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Событие #%d не найдено.", id))
			return
		}
		h.logger.Error("Failed to delete event", zap.Int64("event_id", id), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось удалить событие. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, chatID, "🗑 Событие удалено:\n\n"+formatting.FormatEvent(*event))
}

// HandleSubscribe включает уведомления о расходниках
func (h *Handlers) HandleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSubscribed(ctx, b, update, true)
}

// HandleUnsubscribe выключает уведомления о расходниках
func (h *Handlers) HandleUnsubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setSubscribed(ctx, b, update, false)
}

func (h *Handlers) setSubscribed(ctx context.Context, b *bot.Bot, update *models.Update, subscribed bool) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	err := h.chatService.SetSubscribed(ctx, chatID, subscribed)
	if errors.Is(err, service.ErrChatNotRegistered) {
		h.sendError(ctx, b, chatID, "❌ Чат не зарегистрирован. Используйте /start.")
		return
	}
	if err != nil {
		h.logger.Error("Failed to update subscription", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
		return
	}

	if subscribed {
		h.sendMessage(ctx, b, chatID, "🔔 Уведомления о замене расходников включены.")
		return
	}
	h.sendMessage(ctx, b, chatID, "🔕 Уведомления выключены.")
}

// HandleExport отправляет все события файлом schedules.ics
func (h *Handlers) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	events := h.scheduleService.Events(ctx)
	data := ics.Export(events, time.Now())

	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: "schedules.ics", Data: strings.NewReader(data)},
		Caption:  fmt.Sprintf("📤 %d %s", len(events), formatting.PluralizeEvents(len(events))),
	})
	if err != nil {
		h.logger.Error("Failed to send export", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось отправить файл.")
	}
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.CancelDialog(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// CancelDialog прерывает диалог пользователя
func (h *Handlers) CancelDialog(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendError(ctx, b, chatID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" || update.Message.From == nil {
		return
	}
	text := update.Message.Text

	// Команды с аргументами и в форме /cmd@bot
	if strings.HasPrefix(text, "/") {
		name, _, _ := strings.Cut(text, " ")
		name, _, _ = strings.Cut(name, "@")
		if handler, ok := h.Commands()[name]; ok {
			handler(ctx, b, update)
		}
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateAddEventTitle:
		h.handleEventTitle(ctx, b, update.Message)
	case state.StateAddEventDescription:
		h.handleEventDescription(ctx, b, update.Message)
	case state.StateAddEventDate:
		h.handleEventDate(ctx, b, update.Message)
	case state.StateAddEventStart:
		h.handleEventStart(ctx, b, update.Message)
	case state.StateAddEventEnd:
		h.handleEventEnd(ctx, b, update.Message)
	}
}
