package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// ProgressRepository keeps one JSON progress document per user on disk.
type ProgressRepository struct {
	dir string
}

// NewProgressRepository creates a repository rooted at dir.
func NewProgressRepository(dir string) *ProgressRepository {
	return &ProgressRepository{dir: dir}
}

func (r *ProgressRepository) path(userID int64) string {
	return filepath.Join(r.dir, strconv.FormatInt(userID, 10)+".json")
}

// Get reads the stored state of a user.
// It returns entities.ErrStateNotFound when nothing was saved yet and
// entities.ErrMalformedState when the document cannot be decoded.
func (r *ProgressRepository) Get(_ context.Context, userID int64) (*entities.ProgressState, error) {
	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, entities.ErrStateNotFound
		}
		return nil, fmt.Errorf("read progress: %w", err)
	}

	var state entities.ProgressState
	if err = json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedState, err)
	}

	return &state, nil
}

// Save replaces the stored state of a user.
func (r *ProgressRepository) Save(_ context.Context, userID int64, state *entities.ProgressState) error {
	if err := writeJSONFile(r.path(userID), state); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Delete removes the stored state. Deleting a missing document is not an error.
func (r *ProgressRepository) Delete(_ context.Context, userID int64) error {
	if err := os.Remove(r.path(userID)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
