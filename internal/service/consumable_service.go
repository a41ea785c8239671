package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
	"go.uber.org/zap"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidLifetime = errors.New("lifetime must be positive")
)

type ConsumableAPI interface {
	ListConsumables(ctx context.Context) []model.Consumable
	GetConsumable(ctx context.Context, id int64) (*model.Consumable, error)
	CreateConsumable(ctx context.Context, in model.ConsumableInput) (*model.Consumable, error)
	UpdateConsumable(ctx context.Context, id int64, in model.ConsumableInput) (*model.Consumable, error)
	DeleteConsumable(ctx context.Context, id int64) error
}

type ConsumableService struct {
	api      ConsumableAPI
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewConsumableService(api ConsumableAPI, loc *time.Location, logger *zap.Logger) *ConsumableService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsumableService{api: api, location: loc, now: time.Now, logger: logger}
}

// Today текущая дата в локации сервиса
func (s *ConsumableService) Today() model.Date {
	return model.DateOf(s.now().In(s.location))
}

// List расходники по возрастанию оставшегося срока.
// Срок пересчитывается от сегодняшней даты, а не берётся из ответа API.
func (s *ConsumableService) List(ctx context.Context) []model.Consumable {
	today := s.Today()

	items := s.api.ListConsumables(ctx)
	for i := range items {
		items[i].DaysRemaining = model.DaysRemaining(items[i].InstallationDate, items[i].LifetimeDays, today)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysRemaining != items[j].DaysRemaining {
			return items[i].DaysRemaining < items[j].DaysRemaining
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// ExpiringSoon расходники, у которых осталось не больше days дней
func (s *ConsumableService) ExpiringSoon(ctx context.Context, days int) []model.Consumable {
	var expiring []model.Consumable
	for _, item := range s.List(ctx) {
		if item.DaysRemaining <= days {
			expiring = append(expiring, item)
		}
	}
	return expiring
}

// Create проверяет и создаёт расходник. Пустая дата установки - сегодня.
func (s *ConsumableService) Create(ctx context.Context, in model.ConsumableInput) (*model.Consumable, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.InstallationDate.IsZero() {
		in.InstallationDate = s.Today()
	}
	if err := validateConsumable(in); err != nil {
		return nil, err
	}

	item, err := s.api.CreateConsumable(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create consumable: %w", err)
	}
	s.refresh(item)

	s.logger.Info("Consumable created",
		zap.Int64("consumable_id", item.ID),
		zap.String("name", item.Name),
		zap.String("category", string(item.Category)),
	)
	return item, nil
}

// Renew отмечает замену: дата установки становится сегодняшней
func (s *ConsumableService) Renew(ctx context.Context, id int64) (*model.Consumable, error) {
	current, err := s.api.GetConsumable(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find consumable: %w", err)
	}

	item, err := s.api.UpdateConsumable(ctx, id, model.ConsumableInput{
		Name:             current.Name,
		Category:         current.Category,
		InstallationDate: s.Today(),
		LifetimeDays:     current.LifetimeDays,
		Notes:            current.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("renew consumable: %w", err)
	}
	s.refresh(item)

	s.logger.Info("Consumable renewed", zap.Int64("consumable_id", id))
	return item, nil
}

// Delete удаляет расходник и возвращает его для подтверждения
func (s *ConsumableService) Delete(ctx context.Context, id int64) (*model.Consumable, error) {
	item, err := s.api.GetConsumable(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find consumable: %w", err)
	}
	if err := s.api.DeleteConsumable(ctx, id); err != nil {
		return nil, fmt.Errorf("delete consumable: %w", err)
	}

	s.logger.Info("Consumable deleted", zap.Int64("consumable_id", id))
	return item, nil
}

func (s *ConsumableService) refresh(item *model.Consumable) {
	item.DaysRemaining = model.DaysRemaining(item.InstallationDate, item.LifetimeDays, s.Today())
}

func validateConsumable(in model.ConsumableInput) error {
	switch {
	case in.Name == "":
		return ErrEmptyName
	case !in.Category.Valid():
		return fmt.Errorf("%w: %q", ErrUnknownCategory, in.Category)
	case in.LifetimeDays <= 0:
		return ErrInvalidLifetime
	}
	return nil
}
