package common

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/timeslot"
)

var ErrInvalidClock = errors.New("invalid time, expected HH:MM")

// Clock время суток, введённое пользователем
type Clock struct {
	Hour, Minute int
	// Rounded ввод не попал на получасовую сетку и был округлён
	Rounded bool
}

// ParseClock разбирает "HH:MM". Ввод проходит через маску времени; если маска
// отклоняет минуты, значение округляется до ближайших 30 минут.
func ParseClock(input string) (Clock, error) {
	input = strings.TrimSpace(input)
	input = strings.NewReplacer(".", ":", "-", ":", " ", ":").Replace(input)

	masked, rejected := timeslot.ClockMask.Replay(input)
	if !rejected && len(masked) == timeslot.ClockMask.Len() {
		h, _ := strconv.Atoi(masked[:2])
		m, _ := strconv.Atoi(masked[3:])
		if h > 23 {
			return Clock{}, ErrInvalidClock
		}
		return Clock{Hour: h, Minute: m}, nil
	}

	t, err := time.Parse("15:04", input)
	if err != nil {
		if t, err = time.Parse("3:04", input); err != nil {
			return Clock{}, ErrInvalidClock
		}
	}
	rounded := timeslot.Round(t)
	if rounded.Day() != t.Day() {
		// 23:45 и позже округляются на следующие сутки
		return Clock{Hour: 23, Minute: 30, Rounded: true}, nil
	}
	return Clock{Hour: rounded.Hour(), Minute: rounded.Minute(), Rounded: !rounded.Equal(t)}, nil
}

func (c Clock) String() string {
	return time.Date(0, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("15:04")
}
