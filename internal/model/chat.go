package model

import (
	"time"

	"github.com/google/uuid"
)

// Chat чат Telegram, зарегистрированный в боте
type Chat struct {
	ID         uuid.UUID `json:"id"`
	TelegramID int64     `json:"telegram_id"` // ID чата в Telegram
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	Subscribed bool      `json:"subscribed"` // получает уведомления об истекающих расходниках
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
