package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// ProgressStats is a read-only snapshot of a user's progress.
type ProgressStats struct {
	Solved        int                  `json:"solved"`
	Attempted     int                  `json:"attempted"`
	Bookmarked    int                  `json:"bookmarked"`
	Streak        int                  `json:"streak"`       // windowed current streak, the displayed value
	CachedStreak  int                  `json:"cachedStreak"` // incremental counter kept by toggles
	LongestStreak int                  `json:"longestStreak"`
	ActiveDays    int                  `json:"activeDays"`
	TotalSolves   int                  `json:"totalSolves"`
	LastSolveDate string               `json:"lastSolveDate,omitempty"`
	DailySolves   entities.DailySolves `json:"dailySolves"`
}

// ProgressService owns user progress. Every mutation runs under a per-user
// lock and is written to the repository before the lock is released.
type ProgressService struct {
	repository ProgressStateRepository
	loc        *time.Location
	windowDays int
	now        Clock
	logger     *zap.Logger

	locks  userLocks
	mu     sync.Mutex
	states map[int64]*entities.ProgressState
}

func NewProgressService(
	repository ProgressStateRepository,
	loc *time.Location,
	windowDays int,
	logger *zap.Logger,
) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		repository: repository,
		loc:        loc,
		windowDays: windowDays,
		now:        time.Now,
		logger:     logger,
		states:     make(map[int64]*entities.ProgressState),
	}
}

// SetClock replaces the time source.
func (s *ProgressService) SetClock(now Clock) {
	s.now = now
}

// Now returns the current time in the configured location.
func (s *ProgressService) Now() time.Time {
	return s.now().In(s.loc)
}

// WindowDays returns the trailing window used for streak recomputation.
func (s *ProgressService) WindowDays() int {
	return s.windowDays
}

// Location returns the zone that defines the local calendar day.
func (s *ProgressService) Location() *time.Location {
	return s.loc
}

func (s *ProgressService) lock(userID int64) func() {
	return s.locks.lock(userID)
}

// load returns the cached state of a user, reading it from the repository
// on first use. A missing or malformed document yields an empty state that is
// cached only when keepEmpty is set, so reads of unknown users leave no trace.
// Must be called with the user lock held.
func (s *ProgressService) load(ctx context.Context, userID int64, keepEmpty bool) (*entities.ProgressState, error) {
	s.mu.Lock()
	state, ok := s.states[userID]
	s.mu.Unlock()
	if ok {
		return state, nil
	}

	state, err := s.repository.Get(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrStateNotFound):
		if !keepEmpty {
			return entities.NewProgressState(), nil
		}
		state = entities.NewProgressState()
	case errors.Is(err, entities.ErrMalformedState):
		s.logger.Warn("stored progress is malformed, starting empty",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		if !keepEmpty {
			return entities.NewProgressState(), nil
		}
		state = entities.NewProgressState()
	default:
		return nil, fmt.Errorf("load progress: %w", err)
	}

	s.mu.Lock()
	s.states[userID] = state
	s.mu.Unlock()

	return state, nil
}

// mutate applies fn to the user's state and persists the result.
// The returned snapshot reflects fn even when saving fails.
func (s *ProgressService) mutate(
	ctx context.Context,
	userID int64,
	fn func(state *entities.ProgressState),
) (*entities.ProgressState, error) {
	unlock := s.lock(userID)
	defer unlock()

	state, err := s.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	fn(state)
	snapshot := state.Clone()

	if err = s.repository.Save(ctx, userID, state); err != nil {
		s.logger.Error("failed to save progress", zap.Int64("user_id", userID), zap.Error(err))
		return snapshot, fmt.Errorf("save progress: %w", err)
	}

	return snapshot, nil
}

// State returns a copy of the user's current state.
func (s *ProgressService) State(ctx context.Context, userID int64) (*entities.ProgressState, error) {
	unlock := s.lock(userID)
	defer unlock()

	state, err := s.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return state.Clone(), nil
}

// ToggleSolved flips the solved flag of problemID and reports the new value.
func (s *ProgressService) ToggleSolved(ctx context.Context, userID int64, problemID string) (bool, error) {
	var solved bool
	now := s.Now()
	_, err := s.mutate(ctx, userID, func(state *entities.ProgressState) {
		solved = state.ToggleSolved(problemID, now)
	})
	return solved, err
}

// ToggleAttempted flips the attempted flag; it is a no-op for solved problems.
func (s *ProgressService) ToggleAttempted(ctx context.Context, userID int64, problemID string) (bool, error) {
	var attempted bool
	_, err := s.mutate(ctx, userID, func(state *entities.ProgressState) {
		attempted = state.ToggleAttempted(problemID)
	})
	return attempted, err
}

// ToggleBookmark flips the bookmark flag of problemID and reports the new value.
func (s *ProgressService) ToggleBookmark(ctx context.Context, userID int64, problemID string) (bool, error) {
	var bookmarked bool
	_, err := s.mutate(ctx, userID, func(state *entities.ProgressState) {
		bookmarked = state.ToggleBookmark(problemID)
	})
	return bookmarked, err
}

// MergeSolved adds externally solved ids and reports how many were new.
func (s *ProgressService) MergeSolved(ctx context.Context, userID int64, ids []string) (int, error) {
	var added int
	_, err := s.mutate(ctx, userID, func(state *entities.ProgressState) {
		added = state.MergeSolved(ids)
	})
	return added, err
}

// Reset clears the user's progress. With a nil wipe the empty state is saved.
// Otherwise wipe replaces the stored document, typically together with other
// per-user data, and the empty state is only cached. Either way no toggle can
// interleave with the reset.
func (s *ProgressService) Reset(ctx context.Context, userID int64, wipe func(ctx context.Context, userID int64) error) error {
	if wipe == nil {
		_, err := s.mutate(ctx, userID, func(state *entities.ProgressState) {
			state.Reset()
		})
		return err
	}

	unlock := s.lock(userID)
	defer unlock()

	if err := wipe(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	s.states[userID] = entities.NewProgressState()
	s.mu.Unlock()
	return nil
}

// GetStats returns counters, both streaks and the daily solve map.
func (s *ProgressService) GetStats(ctx context.Context, userID int64) (*ProgressStats, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.statsOf(state), nil
}

func (s *ProgressService) statsOf(state *entities.ProgressState) *ProgressStats {
	window := entities.ComputeWindowStats(state.DailySolves, s.windowDays, s.Now())

	return &ProgressStats{
		Solved:        len(state.Solved),
		Attempted:     len(state.Attempted),
		Bookmarked:    len(state.Bookmarked),
		Streak:        window.CurrentStreak,
		CachedStreak:  state.Streak,
		LongestStreak: window.LongestStreak,
		ActiveDays:    window.ActiveDays,
		TotalSolves:   window.TotalSolves,
		LastSolveDate: state.LastSolveDate,
		DailySolves:   state.DailySolves,
	}
}

// Heatmap returns the trailing days of activity grouped into weeks, oldest first.
func (s *ProgressService) Heatmap(ctx context.Context, userID int64, days int) ([][]entities.DayCell, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entities.BuildHeatmapGrid(state.DailySolves, days, s.Now()), nil
}

// MonthCalendar returns a Monday-first grid for the given month.
func (s *ProgressService) MonthCalendar(ctx context.Context, userID int64, year int, month time.Month) ([]entities.MonthCell, error) {
	state, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return entities.BuildMonthGrid(state.DailySolves, year, month, s.loc), nil
}
