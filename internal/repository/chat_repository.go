package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const chatColumns = `id, telegram_id, username, first_name, subscribed, created_at, updated_at`

type ChatRepository struct {
	*base.Repository
}

func NewChatRepository(db base.DB) *ChatRepository {
	return &ChatRepository{Repository: base.NewRepository(db)}
}

// Upsert регистрирует чат или обновляет имя; флаг подписки не трогает
func (r *ChatRepository) Upsert(ctx context.Context, chat *model.Chat) error {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}

	query := `
		INSERT INTO chats (id, telegram_id, username, first_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    updated_at = NOW()
		RETURNING ` + chatColumns

	row := r.QueryRow(ctx, query, chat.ID, chat.TelegramID, chat.Username, chat.FirstName)
	saved, err := scanChat(row)
	if err != nil {
		return fmt.Errorf("upsert chat: %w", err)
	}
	*chat = saved
	return nil
}

// GetByTelegramID возвращает nil, если чат не зарегистрирован
func (r *ChatRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE telegram_id = $1`

	chat, err := scanChat(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat by telegram id: %w", err)
	}
	return &chat, nil
}

// SetSubscribed меняет подписку; false, если чата нет
func (r *ChatRepository) SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) (bool, error) {
	query := `UPDATE chats SET subscribed = $2, updated_at = NOW() WHERE telegram_id = $1`

	affected, err := r.ExecAffected(ctx, query, telegramID, subscribed)
	if err != nil {
		return false, fmt.Errorf("set chat subscription: %w", err)
	}
	return affected > 0, nil
}

func (r *ChatRepository) ListSubscribed(ctx context.Context) ([]model.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE subscribed ORDER BY created_at`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribed chats: %w", err)
	}
	chats, err := base.CollectRows(rows, scanChat)
	if err != nil {
		return nil, fmt.Errorf("scan subscribed chats: %w", err)
	}
	return chats, nil
}

func scanChat(row pgx.Row) (model.Chat, error) {
	var c model.Chat
	err := row.Scan(&c.ID, &c.TelegramID, &c.Username, &c.FirstName, &c.Subscribed, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
