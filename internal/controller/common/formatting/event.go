package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
)

// FormatEvent карточка события (HTML)
func FormatEvent(e model.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📌 <b>%s</b> (#%d)\n", html.EscapeString(e.Title), e.ID)
	if e.HasStart() {
		fmt.Fprintf(&sb, "📅 %s\n", FormatDate(model.DateOf(e.StartTime)))
		fmt.Fprintf(&sb, "🕐 %s\n", FormatTimeRange(e.StartTime, e.EndTime))
	}
	if e.Description != "" {
		fmt.Fprintf(&sb, "📝 %s\n", html.EscapeString(e.Description))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatAgenda список событий дня (HTML)
func FormatAgenda(d model.Date, events []model.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n\n", FormatDate(d))

	if len(events) == 0 {
		sb.WriteString("Событий нет.\n\nДобавить: /addevent")
		return sb.String()
	}

	for _, e := range events {
		fmt.Fprintf(&sb, "• %s <b>%s</b> <i>#%d</i>\n", FormatTimeRange(e.StartTime, e.EndTime), html.EscapeString(e.Title), e.ID)
		if e.Description != "" {
			fmt.Fprintf(&sb, "   %s\n", html.EscapeString(e.Description))
		}
	}
	fmt.Fprintf(&sb, "\nВсего: %d %s. Удалить: /delete &lt;id&gt;", len(events), PluralizeEvents(len(events)))
	return sb.String()
}

// FormatMonthCaption подпись к картинке месяца
func FormatMonthCaption(title string, events int) string {
	if events == 0 {
		return fmt.Sprintf("🗓 %s\nСобытий нет", title)
	}
	return fmt.Sprintf("🗓 %s\n%d %s", title, events, PluralizeEvents(events))
}

var fieldLabels = map[timeslot.Field]string{
	timeslot.FieldStart: "Начало",
	timeslot.FieldEnd:   "Окончание",
}

var fieldMessages = map[string]string{
	timeslot.ErrNotOnBoundary.Error():    "должно быть кратно 30 минутам",
	timeslot.ErrEndNotAfterStart.Error(): "должно быть позже начала",
	"start is required":                  "обязательно",
}

// FormatFieldErrors ошибки интервала построчно, начало первым
func FormatFieldErrors(fe timeslot.FieldErrors) string {
	var lines []string
	for _, f := range []timeslot.Field{timeslot.FieldStart, timeslot.FieldEnd} {
		msg, ok := fe[f]
		if !ok {
			continue
		}
		if ru, ok := fieldMessages[msg]; ok {
			msg = ru
		}
		lines = append(lines, fmt.Sprintf("⚠️ %s: %s", fieldLabels[f], msg))
	}
	return strings.Join(lines, "\n")
}
