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

type adminTaskRecord struct {
	ID          string              `json:"id"`
	ProblemLink string              `json:"problemLink"`
	ProblemName string              `json:"problemName"`
	Topic       string              `json:"topic"`
	Difficulty  entities.Difficulty `json:"difficulty"`
	Platform    entities.Platform   `json:"platform"`
	DateAdded   time.Time           `json:"dateAdded"`
	Notes       string              `json:"notes,omitempty"`
}

// AdminTaskRepository stores admin daily tasks in admin_tasks.json.
type AdminTaskRepository struct {
	mu    sync.RWMutex
	path  string
	tasks map[string]entities.AdminTask
}

// NewAdminTaskRepository loads admin_tasks.json from dir, starting empty when it does not exist.
func NewAdminTaskRepository(dir string) (*AdminTaskRepository, error) {
	r := &AdminTaskRepository{
		path:  filepath.Join(dir, "admin_tasks.json"),
		tasks: make(map[string]entities.AdminTask),
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("read admin tasks: %w", err)
	}

	var records []adminTaskRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal admin tasks JSON: %w", err)
	}
	for _, rec := range records {
		r.tasks[rec.ID] = entities.AdminTask(rec)
	}

	return r, nil
}

// List returns all tasks, newest first.
func (r *AdminTaskRepository) List(_ context.Context) ([]entities.AdminTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

// Get retrieves a task by ID.
func (r *AdminTaskRepository) Get(_ context.Context, id string) (*entities.AdminTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return &task, nil
}

// Create stores a new task.
func (r *AdminTaskRepository) Create(_ context.Context, task *entities.AdminTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID] = *task
	return r.flush()
}

// Update replaces an existing task.
func (r *AdminTaskRepository) Update(_ context.Context, task *entities.AdminTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return r.flush()
}

// Delete removes a task by ID.
func (r *AdminTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return r.flush()
}

func (r *AdminTaskRepository) sorted() []entities.AdminTask {
	tasks := make([]entities.AdminTask, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].DateAdded.Equal(tasks[j].DateAdded) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].DateAdded.After(tasks[j].DateAdded)
	})
	return tasks
}

// flush must be called with mu held.
func (r *AdminTaskRepository) flush() error {
	tasks := r.sorted()
	records := make([]adminTaskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, adminTaskRecord(t))
	}

	if err := writeJSONFile(r.path, records); err != nil {
		return fmt.Errorf("save admin tasks: %w", err)
	}
	return nil
}
