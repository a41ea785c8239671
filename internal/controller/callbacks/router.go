package callbacks

import (
	"context"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/controller/common"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Dialog шаги диалога /addevent, доступные с inline-кнопок
type Dialog interface {
	ApplyDate(ctx context.Context, b *bot.Bot, chatID, telegramID int64, d model.Date)
	KeepStart(ctx context.Context, b *bot.Bot, chatID, telegramID int64)
	ApplyEnd(ctx context.Context, b *bot.Bot, chatID, telegramID int64, offset *time.Duration)
	CancelDialog(ctx context.Context, b *bot.Bot, chatID, telegramID int64)
	SendAgenda(ctx context.Context, b *bot.Bot, chatID int64, day model.Date)
}

// Handler обрабатывает нажатия на inline кнопки
type Handler struct {
	scheduleService *service.ScheduleService
	dialog          Dialog
	logger          *zap.Logger
}

func NewHandler(scheduleService *service.ScheduleService, dialog Dialog, logger *zap.Logger) *Handler {
	return &Handler{
		scheduleService: scheduleService,
		dialog:          dialog,
		logger:          logger,
	}
}

// HandleCallbackQuery маршрутизирует callback по префиксу данных
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallback(ctx, b, callback.ID, "")
		return
	}

	data := callback.Data
	h.logger.Debug("Callback received",
		zap.Int64("telegram_id", callback.From.ID),
		zap.String("data", data),
	)

	// порядок важен: cal:today и ev_end:none пересекаются с общими префиксами
	switch {
	case data == common.CalendarToday:
		h.showMonth(ctx, b, callback, msg, calendar.NewView(h.scheduleService.Today()))
	case strings.HasPrefix(data, common.CalendarMonth):
		month, err := common.ParseMonthData(data)
		if err != nil {
			h.invalid(ctx, b, callback, err)
			return
		}
		view := calendar.NewView(h.scheduleService.Today())
		view.Month = month
		h.showMonth(ctx, b, callback, msg, view)
	case strings.HasPrefix(data, common.CalendarDay):
		d, err := common.ParseDateData(data, common.CalendarDay)
		if err != nil {
			h.invalid(ctx, b, callback, err)
			return
		}
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.SendAgenda(ctx, b, msg.Chat.ID, d)
	case strings.HasPrefix(data, common.EventDate):
		d, err := common.ParseDateData(data, common.EventDate)
		if err != nil {
			h.invalid(ctx, b, callback, err)
			return
		}
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.ApplyDate(ctx, b, msg.Chat.ID, callback.From.ID, d)
	case data == common.EventKeepTime:
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.KeepStart(ctx, b, msg.Chat.ID, callback.From.ID)
	case data == common.EventNoEnd:
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.ApplyEnd(ctx, b, msg.Chat.ID, callback.From.ID, nil)
	case strings.HasPrefix(data, common.EventEnd):
		offset, err := common.ParseEndData(data)
		if err != nil {
			h.invalid(ctx, b, callback, err)
			return
		}
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.ApplyEnd(ctx, b, msg.Chat.ID, callback.From.ID, &offset)
	case data == common.EventCancel:
		common.AnswerCallback(ctx, b, callback.ID, "")
		h.dialog.CancelDialog(ctx, b, msg.Chat.ID, callback.From.ID)
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}

// showMonth отправляет новый месяц и удаляет старое сообщение
func (h *Handler) showMonth(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, msg *models.Message, view calendar.View) {
	if err := common.SendMonth(ctx, b, h.scheduleService, msg.Chat.ID, view, h.logger); err != nil {
		h.logger.Error("Failed to show month", zap.String("month", view.Month.String()), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось показать календарь")
		return
	}

	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
	common.AnswerCallback(ctx, b, callback.ID, "")
}

func (h *Handler) invalid(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) {
	h.logger.Warn("Invalid callback data", zap.String("data", callback.Data), zap.Error(err))
	common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Некорректные данные кнопки")
}
