package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/timeslot"
	"go.uber.org/zap"
)

var ErrEmptyTitle = errors.New("title is required")

// ScheduleAPI операции REST API над событиями
type ScheduleAPI interface {
	ListSchedules(ctx context.Context) []model.Event
	GetSchedule(ctx context.Context, id int64) (*model.Event, error)
	CreateSchedule(ctx context.Context, in model.EventInput) (*model.Event, error)
	UpdateSchedule(ctx context.Context, id int64, in model.EventInput) (*model.Event, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

type ScheduleService struct {
	api      ScheduleAPI
	builder  *calendar.Builder
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewScheduleService(api ScheduleAPI, loc *time.Location, logger *zap.Logger) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleService{
		api:      api,
		builder:  calendar.NewBuilder(loc),
		location: loc,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *ScheduleService) Location() *time.Location {
	return s.location
}

// Today текущая дата в локации сервиса
func (s *ScheduleService) Today() model.Date {
	return model.DateOf(s.now().In(s.location))
}

// Editor редактор интервала с теми же локацией и часами, что у сервиса
func (s *ScheduleService) Editor() *timeslot.Editor {
	e := timeslot.NewEditor(s.location)
	e.Now = s.now
	return e
}

// MonthGrid загружает события и строит сетку для состояния навигации
func (s *ScheduleService) MonthGrid(ctx context.Context, v calendar.View) calendar.Grid {
	return s.builder.BuildView(v, s.Events(ctx), s.Today())
}

// DayAgenda события, начинающиеся в дату d, по времени начала
func (s *ScheduleService) DayAgenda(ctx context.Context, d model.Date) []model.Event {
	events := s.builder.EventsOn(d, s.Events(ctx))
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events
}

// Events все события со временем в локации сервиса
func (s *ScheduleService) Events(ctx context.Context) []model.Event {
	events := s.api.ListSchedules(ctx)
	for i := range events {
		s.localize(&events[i])
	}
	return events
}

func (s *ScheduleService) localize(e *model.Event) {
	if e.HasStart() {
		e.StartTime = e.StartTime.In(s.location)
	}
	if e.EndTime != nil {
		end := e.EndTime.In(s.location)
		e.EndTime = &end
	}
}

// Get событие по ID со временем в локации сервиса
func (s *ScheduleService) Get(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.api.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	s.localize(event)
	return event, nil
}

// Create проверяет интервал и создаёт событие.
// Ошибки интервала возвращаются как timeslot.FieldErrors.
func (s *ScheduleService) Create(ctx context.Context, title, description string, p timeslot.Proposal) (*model.Event, error) {
	in, err := eventInput(title, description, p)
	if err != nil {
		return nil, err
	}

	event, err := s.api.CreateSchedule(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.localize(event)

	s.logger.Info("Event created",
		zap.Int64("event_id", event.ID),
		zap.String("title", event.Title),
		zap.Time("start", event.StartTime),
	)
	return event, nil
}

// Update проверяет интервал и заменяет поля события id
func (s *ScheduleService) Update(ctx context.Context, id int64, title, description string, p timeslot.Proposal) (*model.Event, error) {
	in, err := eventInput(title, description, p)
	if err != nil {
		return nil, err
	}

	event, err := s.api.UpdateSchedule(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.localize(event)

	s.logger.Info("Event updated",
		zap.Int64("event_id", id),
		zap.Time("start", event.StartTime),
	)
	return event, nil
}

func eventInput(title, description string, p timeslot.Proposal) (model.EventInput, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.EventInput{}, ErrEmptyTitle
	}
	if err := timeslot.Validate(p).Err(); err != nil {
		return model.EventInput{}, err
	}
	return model.EventInput{
		Title:       title,
		Description: strings.TrimSpace(description),
		StartTime:   p.Start,
		EndTime:     p.End,
	}, nil
}

// Delete удаляет событие и возвращает его для подтверждения
func (s *ScheduleService) Delete(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.api.GetSchedule(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if err := s.api.DeleteSchedule(ctx, id); err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("Event deleted", zap.Int64("event_id", id))
	return event, nil
}
