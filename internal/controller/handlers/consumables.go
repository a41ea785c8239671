package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/household_bot/internal/client"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// срок службы, если он не указан
const defaultLifetimeDays = 90

var (
	errConsumableUsage    = errors.New("consumable usage")
	errConsumableCategory = errors.New("consumable category")
	errConsumableLifetime = errors.New("consumable lifetime")
	errConsumableDate     = errors.New("consumable date")
)

// HandleConsumables список расходников
func (h *Handlers) HandleConsumables(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	items := h.consumableService.List(ctx)
	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.FormatConsumables(items))
}

// HandleAddConsumable добавляет расходник одной строкой:
// /addconsumable Название; категория; срок в днях; ГГГГ-ММ-ДД; заметка
func (h *Handlers) HandleAddConsumable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	in, err := parseConsumableArgs(commandArg(update.Message.Text))
	if err != nil {
		h.sendMessage(ctx, b, chatID, consumableUsage(err))
		return
	}

	item, err := h.consumableService.Create(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) || errors.Is(err, service.ErrUnknownCategory) || errors.Is(err, service.ErrInvalidLifetime) {
			h.sendMessage(ctx, b, chatID, consumableUsage(errConsumableUsage))
			return
		}
		h.logger.Error("Failed to create consumable", zap.String("name", in.Name), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось добавить расходник. Попробуйте позже.")
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Расходник добавлен:\n\n"+formatting.FormatConsumable(*item))
}

// HandleRenewConsumable отмечает замену: /renewconsumable 3
func (h *Handlers) HandleRenewConsumable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, ok := h.consumableID(ctx, b, chatID, update.Message.Text, "/renewconsumable 3")
	if !ok {
		return
	}

	item, err := h.consumableService.Renew(ctx, id)
	if err != nil {
		h.consumableFailed(ctx, b, chatID, id, "renew", err)
		return
	}
	h.sendMessage(ctx, b, chatID, "🔄 Замена отмечена:\n\n"+formatting.FormatConsumable(*item))
}

// HandleDeleteConsumable удаляет расходник: /delconsumable 3
func (h *Handlers) HandleDeleteConsumable(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	id, ok := h.consumableID(ctx, b, chatID, update.Message.Text, "/delconsumable 3")
	if !ok {
		return
	}

	item, err := h.consumableService.Delete(ctx, id)
	if err != nil {
		h.consumableFailed(ctx, b, chatID, id, "delete", err)
		return
	}
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("🗑 Расходник «%s» удалён.", html.EscapeString(item.Name)))
}

func (h *Handlers) consumableID(ctx context.Context, b *bot.Bot, chatID int64, text, example string) (int64, bool) {
	id, err := strconv.ParseInt(commandArg(text), 10, 64)
	if err != nil || id <= 0 {
		h.sendError(ctx, b, chatID, "❌ Укажите номер расходника: "+example)
		return 0, false
	}
	return id, true
}

func (h *Handlers) consumableFailed(ctx context.Context, b *bot.Bot, chatID, id int64, action string, err error) {
	if client.IsNotFound(err) {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Расходник #%d не найден.", id))
		return
	}
	h.logger.Error("Failed to update consumable",
		zap.String("action", action),
		zap.Int64("consumable_id", id),
		zap.Error(err),
	)
	h.sendError(ctx, b, chatID, "❌ Не удалось выполнить операцию. Попробуйте позже.")
}

// parseConsumableArgs разбирает "Название; категория; срок; дата; заметка".
// Обязательно только название; категория по умолчанию «Другое», срок 90 дней,
// пустая дата установки означает сегодня.
func parseConsumableArgs(arg string) (model.ConsumableInput, error) {
	parts := strings.Split(arg, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return model.ConsumableInput{}, errConsumableUsage
	}

	in := model.ConsumableInput{
		Name:         parts[0],
		Category:     model.CategoryOther,
		LifetimeDays: defaultLifetimeDays,
	}
	if len(parts) > 1 && parts[1] != "" {
		category, ok := model.ParseCategory(parts[1])
		if !ok {
			return model.ConsumableInput{}, errConsumableCategory
		}
		in.Category = category
	}
	if len(parts) > 2 && parts[2] != "" {
		days, err := strconv.Atoi(parts[2])
		if err != nil || days <= 0 {
			return model.ConsumableInput{}, errConsumableLifetime
		}
		in.LifetimeDays = days
	}
	if len(parts) > 3 && parts[3] != "" {
		d, err := parseUserDate(parts[3])
		if err != nil {
			return model.ConsumableInput{}, errConsumableDate
		}
		in.InstallationDate = d
	}
	if len(parts) > 4 {
		in.Notes = strings.Join(parts[4:], "; ")
	}
	return in, nil
}

func consumableUsage(err error) string {
	var sb strings.Builder
	switch {
	case errors.Is(err, errConsumableCategory):
		sb.WriteString("❌ Неизвестная категория.\n\n")
	case errors.Is(err, errConsumableLifetime):
		sb.WriteString("❌ Срок службы - целое число дней больше нуля.\n\n")
	case errors.Is(err, errConsumableDate):
		sb.WriteString("❌ Неверная дата установки. Пример: 2024-03-15\n\n")
	}
	sb.WriteString("🧩 /addconsumable Название; категория; срок в днях; дата установки; заметка\n\n")
	sb.WriteString("Пример: /addconsumable Brita; water_filter; 30; 2024-03-01\n\nКатегории:\n")
	for _, c := range model.Categories {
		fmt.Fprintf(&sb, "• %s - %s\n", c, c.Label())
	}
	return strings.TrimRight(sb.String(), "\n")
}
