package telegram

import "sync"

// Sessions binds chats to employee keys. Bindings live only in memory.
type Sessions struct {
	mu    sync.RWMutex
	chats map[int64]string
}

func NewSessions() *Sessions {
	return &Sessions{chats: make(map[int64]string)}
}

func (s *Sessions) Bind(chatID int64, employeeKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[chatID] = employeeKey
}

func (s *Sessions) Unbind(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chatID)
}

func (s *Sessions) EmployeeKey(chatID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.chats[chatID]
	return key, ok
}
