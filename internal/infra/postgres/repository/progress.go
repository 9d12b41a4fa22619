package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/infra/postgres"
)

// ProgressRepository stores one JSONB progress document per user.
type ProgressRepository struct {
	db postgres.DBTX
}

func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get retrieves the progress document of a user.
func (r *ProgressRepository) Get(ctx context.Context, userID int64) (*entities.ProgressState, error) {
	query := `SELECT state FROM progress_state WHERE user_id = $1`

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrStateNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	var state entities.ProgressState
	if err = json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedState, err)
	}

	return &state, nil
}

// Save creates or replaces the progress document of a user.
func (r *ProgressRepository) Save(ctx context.Context, userID int64, state *entities.ProgressState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	query := `
		INSERT INTO progress_state (user_id, state, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`

	if _, err = r.db.Exec(ctx, query, userID, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	return nil
}

// Delete removes the progress document of a user.
func (r *ProgressRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM progress_state WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
