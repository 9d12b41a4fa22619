package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/cp31-tracker/internal/storage"
)

// ResetService wipes a user back to a fresh start: progress, handle and cached profile.
type ResetService struct {
	repository ResetRepository
	progress   *ProgressService
	profiles   *storage.ProfileStorage
}

func NewResetService(
	repository ResetRepository,
	progress *ProgressService,
	profiles *storage.ProfileStorage,
) *ResetService {
	return &ResetService{
		repository: repository,
		progress:   progress,
		profiles:   profiles,
	}
}

// ResetUser wipes the stored user data in one repository call; the progress
// cache is replaced rather than saved again.
func (s *ResetService) ResetUser(ctx context.Context, userID int64) error {
	if err := s.progress.Reset(ctx, userID, s.repository.ResetUser); err != nil {
		return fmt.Errorf("reset user: %w", err)
	}

	s.profiles.Delete(userID)
	return nil
}
