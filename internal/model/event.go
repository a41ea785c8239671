package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Event запланированное событие календаря (schedule в REST API)
type Event struct {
	ID          int64      `json:"id,omitempty"` // 0 пока событие не сохранено
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"` // нулевое значение - начало отсутствует или не разобрано
	EndTime     *time.Time `json:"end_time,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// EventInput тело запросов создания и обновления события
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

// HasStart сообщает, известно ли время начала события
func (e Event) HasStart() bool {
	return !e.StartTime.IsZero()
}

// Input возвращает тело запроса обновления для события
func (e Event) Input() EventInput {
	return EventInput{
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
	}
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseInstant разбирает ISO-8601 момент времени.
// Строки без смещения интерпретируются в loc.
func ParseInstant(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range instantLayouts {
		// ParseInLocation игнорирует loc, если в строке есть смещение
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type rawEvent struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
	StartTime   json.RawMessage `json:"start_time"`
	EndTime     json.RawMessage `json:"end_time"`
	CreatedAt   json.RawMessage `json:"created_at"`
	UpdatedAt   json.RawMessage `json:"updated_at"`
}

// UnmarshalJSON терпимо разбирает событие: неразборчивые моменты времени
// становятся пустыми вместо ошибки. Время без смещения читается в time.Local,
// для другой зоны используйте DecodeEvent.
func (e *Event) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeEvent(data, time.Local)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

// DecodeEvent разбирает событие, интерпретируя время без смещения в loc.
// Поля времени, не являющиеся строкой ISO-8601, считаются отсутствующими.
func DecodeEvent(data []byte, loc *time.Location) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}

	e := Event{ID: raw.ID, Title: raw.Title}
	if s, ok := rawString(raw.Description); ok {
		e.Description = s
	}
	if t, ok := rawInstant(raw.StartTime, loc); ok {
		e.StartTime = t
	}
	if t, ok := rawInstant(raw.EndTime, loc); ok {
		e.EndTime = &t
	}
	if t, ok := rawInstant(raw.CreatedAt, loc); ok {
		e.CreatedAt = &t
	}
	if t, ok := rawInstant(raw.UpdatedAt, loc); ok {
		e.UpdatedAt = &t
	}
	return e, nil
}

// rawString строковое значение; null, числа и объекты дают false
func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func rawInstant(raw json.RawMessage, loc *time.Location) (time.Time, bool) {
	s, ok := rawString(raw)
	if !ok {
		return time.Time{}, false
	}
	return ParseInstant(s, loc)
}
