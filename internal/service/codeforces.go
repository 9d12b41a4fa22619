package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/storage"
)

var (
	// ErrSuperseded is returned by a sync that lost to a newer one for the same user.
	ErrSuperseded = errors.New("sync superseded by a newer request")
	ErrNoHandle   = errors.New("no codeforces handle connected")
)

// SyncResult is the outcome of a successful Codeforces sync.
type SyncResult struct {
	Profile *codeforces.Profile
	Merged  int // solved keys that were new to the user's state
}

// CodeforcesService connects users to their Codeforces handle and mirrors
// accepted submissions into their progress.
type CodeforcesService struct {
	fetcher  ProfileFetcher
	progress *ProgressService
	users    UserRepository
	registry *storage.FetchRegistry
	profiles *storage.ProfileStorage
	applying userLocks
	now      Clock
	logger   *zap.Logger
}

func NewCodeforcesService(
	fetcher ProfileFetcher,
	progress *ProgressService,
	users UserRepository,
	registry *storage.FetchRegistry,
	profiles *storage.ProfileStorage,
	logger *zap.Logger,
) *CodeforcesService {
	return &CodeforcesService{
		fetcher:  fetcher,
		progress: progress,
		users:    users,
		registry: registry,
		profiles: profiles,
		now:      time.Now,
		logger:   logger,
	}
}

// Sync fetches handle, merges its solved problems into the user's state and
// remembers the handle. Only the newest sync per user is applied; an older
// one still in flight returns ErrSuperseded. Results are applied under a
// per-user lock and the generation stays registered until the apply is done,
// so a newer sync always writes last. A failed sync drops the cached profile
// so stale stats are not shown next to the error.
func (s *CodeforcesService) Sync(ctx context.Context, userID int64, handle string) (*SyncResult, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, codeforces.ErrEmptyHandle
	}

	// 1. Register as the newest fetch, cancelling an older one.
	gen, fetchCtx := s.registry.Begin(ctx, userID)

	// 2. Fetch profile and submissions.
	profile, err := s.fetcher.FetchProfile(fetchCtx, handle)

	// 3. Drop the result if a newer sync started meanwhile.
	unlock := s.applying.lock(userID)
	defer unlock()
	defer s.registry.Finish(userID, gen)

	if !s.registry.Current(userID, gen) {
		s.logger.Debug("codeforces sync superseded",
			zap.Int64("user_id", userID),
			zap.String("handle", handle),
		)
		return nil, ErrSuperseded
	}

	if err != nil {
		s.profiles.Delete(userID)
		s.logger.Warn("codeforces sync failed",
			zap.Int64("user_id", userID),
			zap.String("handle", handle),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch codeforces profile: %w", err)
	}

	// 4. Merge accepted problems and remember the handle.
	merged, err := s.progress.MergeSolved(ctx, userID, profile.Stats.SolvedKeys)
	if err != nil {
		return nil, fmt.Errorf("merge solved: %w", err)
	}

	if err = s.users.SetCodeforcesHandle(ctx, userID, profile.Info.HandleOr(handle)); err != nil &&
		!errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("store handle: %w", err)
	}

	s.profiles.Store(userID, profile, s.now())

	s.logger.Info("codeforces sync completed",
		zap.Int64("user_id", userID),
		zap.String("handle", handle),
		zap.Int("solved", profile.Stats.SolvedProblems),
		zap.Int("merged", merged),
	)

	return &SyncResult{Profile: profile, Merged: merged}, nil
}

// Refresh re-syncs the handle stored for the user.
func (s *CodeforcesService) Refresh(ctx context.Context, userID int64) (*SyncResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, ErrNoHandle
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.CodeforcesHandle == "" {
		return nil, ErrNoHandle
	}

	return s.Sync(ctx, userID, user.CodeforcesHandle)
}

// Cached returns the last successful sync of the user, if any.
func (s *CodeforcesService) Cached(userID int64) (storage.CachedProfile, bool) {
	return s.profiles.Get(userID)
}

// Disconnect forgets the handle and the cached profile.
// Problems merged earlier stay solved.
func (s *CodeforcesService) Disconnect(ctx context.Context, userID int64) error {
	s.profiles.Delete(userID)
	if err := s.users.SetCodeforcesHandle(ctx, userID, ""); err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return fmt.Errorf("clear handle: %w", err)
	}
	return nil
}
