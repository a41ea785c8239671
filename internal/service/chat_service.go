package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/household_bot/internal/model"
	"go.uber.org/zap"
)

var ErrChatNotRegistered = errors.New("chat is not registered")

type ChatRepository interface {
	Upsert(ctx context.Context, chat *model.Chat) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Chat, error)
	SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) (bool, error)
	ListSubscribed(ctx context.Context) ([]model.Chat, error)
}

type ChatService struct {
	repo   ChatRepository
	logger *zap.Logger
}

func NewChatService(repo ChatRepository, logger *zap.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger}
}

// Register регистрирует чат или обновляет его имя
func (s *ChatService) Register(ctx context.Context, telegramID int64, username, firstName string) (*model.Chat, error) {
	chat := &model.Chat{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
	}
	if err := s.repo.Upsert(ctx, chat); err != nil {
		return nil, fmt.Errorf("register chat: %w", err)
	}

	s.logger.Info("Chat registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("username", username),
	)
	return chat, nil
}

// SetSubscribed включает или выключает уведомления о расходниках
func (s *ChatService) SetSubscribed(ctx context.Context, telegramID int64, subscribed bool) error {
	ok, err := s.repo.SetSubscribed(ctx, telegramID, subscribed)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if !ok {
		return ErrChatNotRegistered
	}

	s.logger.Info("Subscription changed",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("subscribed", subscribed),
	)
	return nil
}

func (s *ChatService) Subscribers(ctx context.Context) ([]model.Chat, error) {
	chats, err := s.repo.ListSubscribed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return chats, nil
}
