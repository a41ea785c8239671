package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/household_bot/internal/model"
)

type fakeScheduleAPI struct {
	events  []model.Event
	created []model.EventInput
	updated []model.EventInput
	deleted []int64
	nextID  int64
}

func (f *fakeScheduleAPI) ListSchedules(context.Context) []model.Event {
	return append([]model.Event(nil), f.events...)
}

func (f *fakeScheduleAPI) GetSchedule(_ context.Context, id int64) (*model.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, fmt.Errorf("schedule %d not found", id)
}

func (f *fakeScheduleAPI) CreateSchedule(_ context.Context, in model.EventInput) (*model.Event, error) {
	f.created = append(f.created, in)
	f.nextID++
	e := model.Event{ID: f.nextID, Title: in.Title, Description: in.Description, StartTime: in.StartTime, EndTime: in.EndTime}
	f.events = append(f.events, e)
	return &e, nil
}

func (f *fakeScheduleAPI) UpdateSchedule(_ context.Context, id int64, in model.EventInput) (*model.Event, error) {
	for i := range f.events {
		if f.events[i].ID == id {
			f.updated = append(f.updated, in)
			f.events[i] = model.Event{ID: id, Title: in.Title, Description: in.Description, StartTime: in.StartTime, EndTime: in.EndTime}
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("schedule %d not found", id)
}

func (f *fakeScheduleAPI) DeleteSchedule(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeConsumableAPI struct {
	items   []model.Consumable
	created []model.ConsumableInput
	updated []model.ConsumableInput
	deleted []int64
}

func (f *fakeConsumableAPI) ListConsumables(context.Context) []model.Consumable {
	return append([]model.Consumable(nil), f.items...)
}

func (f *fakeConsumableAPI) GetConsumable(_ context.Context, id int64) (*model.Consumable, error) {
	for _, item := range f.items {
		if item.ID == id {
			item := item
			return &item, nil
		}
	}
	return nil, fmt.Errorf("consumable %d not found", id)
}

func (f *fakeConsumableAPI) CreateConsumable(_ context.Context, in model.ConsumableInput) (*model.Consumable, error) {
	f.created = append(f.created, in)
	item := consumableFrom(int64(len(f.items)+1), in)
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeConsumableAPI) UpdateConsumable(_ context.Context, id int64, in model.ConsumableInput) (*model.Consumable, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.updated = append(f.updated, in)
			f.items[i] = consumableFrom(id, in)
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("consumable %d not found", id)
}

func (f *fakeConsumableAPI) DeleteConsumable(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func consumableFrom(id int64, in model.ConsumableInput) model.Consumable {
	return model.Consumable{
		ID:               id,
		Name:             in.Name,
		Category:         in.Category,
		InstallationDate: in.InstallationDate,
		LifetimeDays:     in.LifetimeDays,
		Notes:            in.Notes,
	}
}

type fakeChatRepo struct {
	chats map[int64]*model.Chat
	err   error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: map[int64]*model.Chat{}}
}

func (f *fakeChatRepo) Upsert(_ context.Context, chat *model.Chat) error {
	if f.err != nil {
		return f.err
	}
	if existing, ok := f.chats[chat.TelegramID]; ok {
		existing.Username = chat.Username
		existing.FirstName = chat.FirstName
		*chat = *existing
		return nil
	}
	c := *chat
	f.chats[chat.TelegramID] = &c
	return nil
}

func (f *fakeChatRepo) GetByTelegramID(_ context.Context, id int64) (*model.Chat, error) {
	return f.chats[id], f.err
}

func (f *fakeChatRepo) SetSubscribed(_ context.Context, id int64, subscribed bool) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	c, ok := f.chats[id]
	if !ok {
		return false, nil
	}
	c.Subscribed = subscribed
	return true, nil
}

func (f *fakeChatRepo) ListSubscribed(context.Context) ([]model.Chat, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Chat
	for _, c := range f.chats {
		if c.Subscribed {
			out = append(out, *c)
		}
	}
	return out, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 10, 7, 0, 0, time.UTC)
}
