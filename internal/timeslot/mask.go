package timeslot

import (
	"strings"
	"unicode"
)

// Mask ограничивает ввод в поле даты-времени по шаблону,
// допуская в минутах только 00 и 30.
// В шаблоне '9' - позиция цифры, остальные символы - литералы.
type Mask struct {
	pattern    string
	minuteTens int
}

var (
	// DateTimeMask поле вида 2024-03-15T14:30
	DateTimeMask = NewMask("9999-99-99T99:99", 14)
	// ClockMask поле вида 14:30
	ClockMask = NewMask("99:99", 3)
)

// NewMask создаёт маску; minuteTens - позиция десятков минут в pattern
func NewMask(pattern string, minuteTens int) Mask {
	return Mask{pattern: pattern, minuteTens: minuteTens}
}

// Управляющие клавиши, которые пропускаются всегда
var controlKeys = map[string]bool{
	"Backspace":  true,
	"Delete":     true,
	"Tab":        true,
	"Enter":      true,
	"Escape":     true,
	"ArrowLeft":  true,
	"ArrowRight": true,
	"ArrowUp":    true,
	"ArrowDown":  true,
	"Home":       true,
	"End":        true,
}

// Len длина заполненного поля
func (m Mask) Len() int {
	return len(m.pattern)
}

// Accept решает, принять ли нажатие key в позиции pos при текущем значении value
func (m Mask) Accept(value string, pos int, key string) bool {
	if controlKeys[key] {
		return true
	}
	if len(key) != 1 || !unicode.IsDigit(rune(key[0])) {
		return false
	}
	if pos < 0 || pos >= len(m.pattern) || m.pattern[pos] != '9' {
		return false
	}

	switch pos {
	case m.minuteTens:
		return key == "0" || key == "3"
	case m.minuteTens + 1:
		if len(value) <= m.minuteTens {
			return false
		}
		tens := value[m.minuteTens]
		return (tens == '0' || tens == '3') && key == "0"
	default:
		return true
	}
}

// Replay прогоняет набранный текст через маску как последовательность нажатий.
// Литералы шаблона подставляются автоматически; совпадающие с ними символы ввода
// поглощаются. Возвращает принятую часть и признак того, что часть нажатий отклонена.
func (m Mask) Replay(input string) (string, bool) {
	var b strings.Builder
	rejected := false

	for _, r := range input {
		pos := b.Len()
		if pos >= len(m.pattern) {
			rejected = true
			continue
		}
		if literal := m.pattern[pos]; literal != '9' {
			if r == rune(literal) {
				b.WriteByte(literal)
				continue
			}
			b.WriteByte(literal)
			pos++
		}
		if m.Accept(b.String(), pos, string(r)) {
			b.WriteRune(r)
		} else {
			rejected = true
		}
	}

	return b.String(), rejected
}
