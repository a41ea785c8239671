package controller

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/household_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/controller/handlers"
	"github.com/Freeeeeet/household_bot/internal/controller/state"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	scheduleService *service.ScheduleService,
	consumableService *service.ConsumableService,
	chatService *service.ChatService,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		scheduleService,
		consumableService,
		chatService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbacks.NewHandler(scheduleService, cmdHandlers, logger),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	for command, handler := range c.handlers.Commands() {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, command, bot.MatchTypeExact, handler)
	}

	// Текст диалогов и команды с аргументами (/calendar 2024-03)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "calendar", Description: "🗓 Календарь на месяц"},
		{Command: "day", Description: "📋 События дня"},
		{Command: "addevent", Description: "➕ Новое событие"},
		{Command: "consumables", Description: "🧰 Расходники"},
		{Command: "addconsumable", Description: "🧩 Добавить расходник"},
		{Command: "subscribe", Description: "🔔 Уведомления о замене"},
		{Command: "unsubscribe", Description: "🔕 Выключить уведомления"},
		{Command: "export", Description: "📤 Выгрузить в .ics"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return fmt.Errorf("set bot commands: %w", err)
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// SendExpiryAlert уведомление об истекающих расходниках
func (c *BotController) SendExpiryAlert(ctx context.Context, chatID int64, items []model.Consumable) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatting.FormatExpiryAlert(items),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("send expiry alert: %w", err)
	}
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}
