package storage

import (
	"sync"
	"time"
)

// AdminSessionStorage remembers which chats are logged into the admin area.
type AdminSessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]time.Time
}

func NewAdminSessionStorage() *AdminSessionStorage {
	return &AdminSessionStorage{
		sessions: make(map[int64]time.Time),
	}
}

// Store marks chatID as logged in since loggedInAt.
func (s *AdminSessionStorage) Store(chatID int64, loggedInAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = loggedInAt
}

// Exists reports whether chatID is logged in.
func (s *AdminSessionStorage) Exists(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[chatID]
	return ok
}

func (s *AdminSessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
