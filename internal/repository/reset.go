package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// ResetRepository wipes everything the file driver keeps for a user.
type ResetRepository struct {
	progress *ProgressRepository
	users    *UserRepository
}

func NewResetRepository(progress *ProgressRepository, users *UserRepository) *ResetRepository {
	return &ResetRepository{progress: progress, users: users}
}

// ResetUser deletes the progress document and forgets the Codeforces handle.
func (r *ResetRepository) ResetUser(ctx context.Context, userID int64) error {
	if err := r.progress.Delete(ctx, userID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	err := r.users.SetCodeforcesHandle(ctx, userID, "")
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("reset handle: %w", err)
	}
	return nil
}
