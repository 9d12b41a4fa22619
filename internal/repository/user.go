package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

type userRecord struct {
	ID               int64     `json:"id"`
	ChatID           int64     `json:"chatId"`
	CodeforcesHandle string    `json:"cfHandle,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserRepository stores known users in a single users.json document.
type UserRepository struct {
	mu    sync.RWMutex
	path  string
	users map[int64]userRecord
}

// NewUserRepository loads users.json from dir, starting empty when it does not exist.
func NewUserRepository(dir string) (*UserRepository, error) {
	r := &UserRepository{
		path:  filepath.Join(dir, "users.json"),
		users: make(map[int64]userRecord),
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("read users: %w", err)
	}

	var records []userRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal users JSON: %w", err)
	}
	for _, rec := range records {
		r.users[rec.ID] = rec
	}

	return r, nil
}

// Save inserts a new user or updates the chat of an existing one.
// It reports whether the user was created.
func (r *UserRepository) Save(_ context.Context, user *entities.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.users[user.ID]
	if !exists {
		rec = userRecord{ID: user.ID, CreatedAt: user.CreatedAt}
	}
	rec.ChatID = user.ChatID
	r.users[user.ID] = rec

	if err := r.flush(); err != nil {
		return false, err
	}
	return !exists, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(_ context.Context, userID int64) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[userID]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return rec.toEntity(), nil
}

// SetCodeforcesHandle stores the handle of a user; an empty handle clears it.
func (r *UserRepository) SetCodeforcesHandle(_ context.Context, userID int64, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	rec.CodeforcesHandle = handle
	r.users[userID] = rec

	return r.flush()
}

// ListAll returns every known user ordered by ID.
func (r *UserRepository) ListAll(_ context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entities.User, 0, len(r.users))
	for _, rec := range r.users {
		users = append(users, rec.toEntity())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

// flush must be called with mu held.
func (r *UserRepository) flush() error {
	records := make([]userRecord, 0, len(r.users))
	for _, rec := range r.users {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	if err := writeJSONFile(r.path, records); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (rec userRecord) toEntity() *entities.User {
	return &entities.User{
		ID:               rec.ID,
		ChatID:           rec.ChatID,
		CodeforcesHandle: rec.CodeforcesHandle,
		CreatedAt:        rec.CreatedAt,
	}
}
