package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
)

// CachedProfile is the last successful Codeforces sync of a user.
type CachedProfile struct {
	Profile  *codeforces.Profile
	SyncedAt time.Time
}

// ProfileStorage provides in-memory storage for Codeforces profiles by user ID.
type ProfileStorage struct {
	mu       sync.RWMutex
	profiles map[int64]CachedProfile
}

func NewProfileStorage() *ProfileStorage {
	return &ProfileStorage{
		profiles: make(map[int64]CachedProfile),
	}
}

func (s *ProfileStorage) Store(userID int64, profile *codeforces.Profile, syncedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[userID] = CachedProfile{Profile: profile, SyncedAt: syncedAt}
}

func (s *ProfileStorage) Get(userID int64) (CachedProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	return p, ok
}

func (s *ProfileStorage) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, userID)
}
