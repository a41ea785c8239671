package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/household_bot/internal/model"
	"go.uber.org/zap"
)

const schedulesPath = "/schedules/"

// ListSchedules возвращает все события. Любая ошибка выборки
// поглощается: в лог пишется предупреждение, а вызывающий получает пустой список.
func (c *Client) ListSchedules(ctx context.Context) []model.Event {
	items, err := listAll[json.RawMessage](ctx, c, schedulesPath)
	if err != nil {
		c.logger.Warn("Failed to fetch schedules, using empty list", zap.Error(err))
		return []model.Event{}
	}
	return decodeEach(c, schedulesPath, items, c.decodeEvent)
}

func (c *Client) decodeEvent(data json.RawMessage) (model.Event, error) {
	return model.DecodeEvent(data, c.location)
}

// doEvent выполняет запрос, ответ которого - одно событие
func (c *Client) doEvent(ctx context.Context, method, path string, body any) (*model.Event, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, nil, body, &raw); err != nil {
		return nil, err
	}
	event, err := c.decodeEvent(raw)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetSchedule получает событие по ID
func (c *Client) GetSchedule(ctx context.Context, id int64) (*model.Event, error) {
	event, err := c.doEvent(ctx, http.MethodGet, schedulePath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get schedule %d: %w", id, err)
	}
	return event, nil
}

// CreateSchedule создаёт событие
func (c *Client) CreateSchedule(ctx context.Context, in model.EventInput) (*model.Event, error) {
	event, err := c.doEvent(ctx, http.MethodPost, schedulesPath, in)
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return event, nil
}

// UpdateSchedule обновляет событие
func (c *Client) UpdateSchedule(ctx context.Context, id int64, in model.EventInput) (*model.Event, error) {
	event, err := c.doEvent(ctx, http.MethodPut, schedulePath(id), in)
	if err != nil {
		return nil, fmt.Errorf("update schedule %d: %w", id, err)
	}
	return event, nil
}

// DeleteSchedule удаляет событие
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, schedulePath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete schedule %d: %w", id, err)
	}
	return nil
}

func schedulePath(id int64) string {
	return fmt.Sprintf("%s%d", schedulesPath, id)
}
