package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/household_bot/internal/model"
	"go.uber.org/zap"
)

const consumablesPath = "/consumables/"

// ListConsumables возвращает все расходники; ошибки выборки поглощаются так же,
// как в ListSchedules.
func (c *Client) ListConsumables(ctx context.Context) []model.Consumable {
	items, err := listAll[json.RawMessage](ctx, c, consumablesPath)
	if err != nil {
		c.logger.Warn("Failed to fetch consumables, using empty list", zap.Error(err))
		return []model.Consumable{}
	}
	return decodeEach(c, consumablesPath, items, decodeConsumable)
}

func decodeConsumable(data json.RawMessage) (model.Consumable, error) {
	var item model.Consumable
	if err := json.Unmarshal(data, &item); err != nil {
		return model.Consumable{}, fmt.Errorf("decode consumable: %w", err)
	}
	return item, nil
}

// GetConsumable получает расходник по ID
func (c *Client) GetConsumable(ctx context.Context, id int64) (*model.Consumable, error) {
	var item model.Consumable
	if err := c.do(ctx, http.MethodGet, consumablePath(id), nil, nil, &item); err != nil {
		return nil, fmt.Errorf("get consumable %d: %w", id, err)
	}
	return &item, nil
}

// CreateConsumable создаёт расходник
func (c *Client) CreateConsumable(ctx context.Context, in model.ConsumableInput) (*model.Consumable, error) {
	if !in.Category.Valid() {
		return nil, fmt.Errorf("create consumable: unknown category %q", in.Category)
	}
	var item model.Consumable
	if err := c.do(ctx, http.MethodPost, consumablesPath, nil, in, &item); err != nil {
		return nil, fmt.Errorf("create consumable: %w", err)
	}
	return &item, nil
}

// UpdateConsumable обновляет расходник
func (c *Client) UpdateConsumable(ctx context.Context, id int64, in model.ConsumableInput) (*model.Consumable, error) {
	var item model.Consumable
	if err := c.do(ctx, http.MethodPut, consumablePath(id), nil, in, &item); err != nil {
		return nil, fmt.Errorf("update consumable %d: %w", id, err)
	}
	return &item, nil
}

// DeleteConsumable удаляет расходник
func (c *Client) DeleteConsumable(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, consumablePath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete consumable %d: %w", id, err)
	}
	return nil
}

func consumablePath(id int64) string {
	return fmt.Sprintf("%s%d", consumablesPath, id)
}
