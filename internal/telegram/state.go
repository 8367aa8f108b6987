package telegram

import (
	"sync"

	"github.com/ananyev/glucobot/internal/domain"
)

// StateManager keeps per-chat conversation sessions. Updates for one chat
// arrive in order, so no per-session locking is needed beyond the map's.
type StateManager struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
}

// NewStateManager creates a new state manager
func NewStateManager() *StateManager {
	return &StateManager{
		sessions: make(map[int64]domain.Session),
	}
}

// Get returns a chat's current session. Absent chats are idle.
func (sm *StateManager) Get(chatID int64) domain.Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[chatID]
}

// Set stores a chat's session
func (sm *StateManager) Set(chatID int64, sess domain.Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[chatID] = sess
}

// Clear removes a chat's session, resetting it to idle
func (sm *StateManager) Clear(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, chatID)
}
