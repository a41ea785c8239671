package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiringSource расходники с истекающим сроком
type ExpiringSource interface {
	ExpiringSoon(ctx context.Context, days int) []model.Consumable
}

// SubscriberSource чаты, подписанные на уведомления
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]model.Chat, error)
}

// AlertSender доставляет уведомление в чат
type AlertSender interface {
	SendExpiryAlert(ctx context.Context, chatID int64, items []model.Consumable) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	cron        *cron.Cron
	spec        string
	days        int
	consumables ExpiringSource
	chats       SubscriberSource
	sender      AlertSender
	timeout     time.Duration
	logger      *zap.Logger
}

func NewScheduler(spec string, days int, loc *time.Location, consumables ExpiringSource, chats SubscriberSource, sender AlertSender, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(loc)),
		spec:        spec,
		days:        days,
		consumables: consumables,
		chats:       chats,
		sender:      sender,
		timeout:     time.Minute,
		logger:      logger,
	}
}

// Start регистрирует задачи и запускает cron
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runExpiryCheck); err != nil {
		return fmt.Errorf("add expiry check: %w", err)
	}
	s.cron.Start()

	s.logger.Info("Background scheduler started",
		zap.String("expiry_cron", s.spec),
		zap.Int("alert_days", s.days),
	)
	return nil
}

// Stop останавливает cron и ждёт текущие задачи
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Background scheduler stopped")
}

func (s *Scheduler) runExpiryCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.CheckExpiring(ctx); err != nil {
		s.logger.Error("Expiry check failed", zap.Error(err))
	}
}

// CheckExpiring рассылает подписчикам список истекающих расходников
// и возвращает число чатов, куда уведомление ушло.
func (s *Scheduler) CheckExpiring(ctx context.Context) (int, error) {
	items := s.consumables.ExpiringSoon(ctx, s.days)
	if len(items) == 0 {
		s.logger.Debug("No expiring consumables")
		return 0, nil
	}

	chats, err := s.chats.Subscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("load subscribers: %w", err)
	}

	sent := 0
	for _, chat := range chats {
		if err := s.sender.SendExpiryAlert(ctx, chat.TelegramID, items); err != nil {
			// ошибка одного чата не прерывает рассылку
			s.logger.Warn("Failed to send expiry alert",
				zap.Int64("chat_id", chat.TelegramID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Expiry alerts sent",
		zap.Int("consumables", len(items)),
		zap.Int("chats", sent),
	)
	return sent, nil
}
