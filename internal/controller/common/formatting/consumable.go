package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/household_bot/internal/model"
)

func remainingBadge(days int) string {
	switch {
	case days == 0:
		return "🔴"
	case days <= 7:
		return "🟠"
	case days <= 30:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatConsumables список расходников (HTML)
func FormatConsumables(items []model.Consumable) string {
	if len(items) == 0 {
		return "🧰 Расходников пока нет."
	}

	var sb strings.Builder
	sb.WriteString("🧰 <b>Расходники</b>\n\n")
	for _, c := range items {
		sb.WriteString(FormatConsumable(c))
		sb.WriteString("\n")
	}
	sb.WriteString("\n/renewconsumable &lt;id&gt; - отметить замену\n/delconsumable &lt;id&gt; - удалить")
	return sb.String()
}

// FormatConsumable строка расходника (HTML)
func FormatConsumable(c model.Consumable) string {
	return fmt.Sprintf("%s <b>%s</b> (%s) #%d\n   осталось %d %s, замена %s",
		remainingBadge(c.DaysRemaining), html.EscapeString(c.Name), c.Category.Label(), c.ID,
		c.DaysRemaining, PluralizeDays(c.DaysRemaining), FormatDate(c.ExpiresOn()))
}

// FormatExpiryAlert уведомление об истекающих расходниках (HTML)
func FormatExpiryAlert(items []model.Consumable) string {
	var sb strings.Builder
	sb.WriteString("⏰ <b>Пора заменить расходники</b>\n\n")
	for _, c := range items {
		if c.DaysRemaining == 0 {
			fmt.Fprintf(&sb, "🔴 %s: срок истёк\n", html.EscapeString(c.Name))
			continue
		}
		fmt.Fprintf(&sb, "🟠 %s: %d %s\n", html.EscapeString(c.Name), c.DaysRemaining, PluralizeDays(c.DaysRemaining))
	}
	sb.WriteString("\nОтписаться: /unsubscribe")
	return sb.String()
}
