package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/render"
	"github.com/Freeeeeet/household_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// SendMonth отправляет картинку месяца с навигацией.
// Если картинку построить не удалось, отправляется текстовый список.
func SendMonth(ctx context.Context, b *bot.Bot, schedules *service.ScheduleService, chatID int64, v calendar.View, logger *zap.Logger) error {
	grid := schedules.MonthGrid(ctx, v)
	title := formatting.MonthTitle(v.Month.Year, v.Month.Month)
	caption := formatting.FormatMonthCaption(title, CountMonthEvents(grid))
	keyboard := CalendarKeyboard(v)

	imageData, err := render.MonthImage(grid, title)
	if err == nil {
		_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileUpload{Filename: "month.png", Data: bytes.NewReader(imageData)},
			Caption:     caption,
			ReplyMarkup: keyboard,
		})
		if err == nil {
			return nil
		}
	}
	logger.Warn("Failed to send month image, falling back to text",
		zap.String("month", v.Month.String()),
		zap.Error(err),
	)

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        caption + "\n\n" + MonthText(grid),
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		return fmt.Errorf("send month: %w", err)
	}
	return nil
}

// CountMonthEvents число событий в днях самого месяца
func CountMonthEvents(grid calendar.Grid) int {
	n := 0
	for _, cell := range grid.Cells {
		if cell.IsCurrentMonth {
			n += len(cell.Events)
		}
	}
	return n
}

// MonthText текстовый вид месяца: дни с событиями
func MonthText(grid calendar.Grid) string {
	var buf bytes.Buffer
	for _, cell := range grid.Cells {
		if !cell.IsCurrentMonth || len(cell.Events) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "<b>%s</b>\n", formatting.FormatDate(cell.Date))
		for _, line := range render.EventLines(cell.Events) {
			fmt.Fprintf(&buf, "  • %s\n", line)
		}
	}
	if buf.Len() == 0 {
		return "Событий нет."
	}
	return buf.String()
}
