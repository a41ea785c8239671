package handlers

import (
	"github.com/Freeeeeet/household_bot/internal/controller/state"
	"github.com/Freeeeeet/household_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	scheduleService   *service.ScheduleService
	consumableService *service.ConsumableService
	chatService       *service.ChatService
	stateManager      *state.Manager
	logger            *zap.Logger
}

func NewHandlers(
	scheduleService *service.ScheduleService,
	consumableService *service.ConsumableService,
	chatService *service.ChatService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		scheduleService:   scheduleService,
		consumableService: consumableService,
		chatService:       chatService,
		stateManager:      stateManager,
		logger:            logger,
	}
}
