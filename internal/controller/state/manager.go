package state

import (
	"sync"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя, черновик сохраняется
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	if userData, exists := sm.states[telegramID]; exists {
		userData.State = state
		return
	}
	sm.states[telegramID] = &UserData{State: state}
}

// Start начинает диалог с пустым черновиком
func (sm *Manager) Start(telegramID int64, state UserState) {
	sm.StartWith(telegramID, state, EventDraft{})
}

// StartWith начинает диалог с заданным черновиком
func (sm *Manager) StartWith(telegramID int64, state UserState, draft EventDraft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = &UserData{State: state, Draft: draft}
}

// Draft возвращает копию черновика
func (sm *Manager) Draft(telegramID int64) (EventDraft, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Draft, true
	}
	return EventDraft{}, false
}

// Update меняет черновик и переводит диалог в next под одной блокировкой.
// Возвращает false, если активного диалога нет.
func (sm *Manager) Update(telegramID int64, next UserState, fn func(*EventDraft)) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return false
	}
	fn(&userData.Draft)
	if next != StateNone {
		userData.State = next
	}
	return true
}

// Transition переводит диалог из from в to и меняет черновик под одной блокировкой.
// Возвращает false, если текущее состояние не from: из двух одновременных
// вызовов с одинаковым from проходит только один.
func (sm *Manager) Transition(telegramID int64, from, to UserState, fn func(*EventDraft)) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.State != from {
		return false
	}
	if fn != nil {
		fn(&userData.Draft)
	}
	if to == StateNone {
		delete(sm.states, telegramID)
		return true
	}
	userData.State = to
	return true
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
