package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// ReminderService nudges users whose streak ends unless they solve something today.
type ReminderService struct {
	users    UserRepository
	progress *ProgressService
	notifier ReminderNotifier
	spec     string
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service running on the cron spec.
func NewReminderService(
	users UserRepository,
	progress *ProgressService,
	spec string,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		users:    users,
		progress: progress,
		spec:     spec,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the scheduler until ctx is cancelled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.progress.Location()))

	_, err := c.AddFunc(s.spec, func() {
		s.logger.Info("cron triggered: processing streak reminders")
		if _, err := s.SendStreakReminders(ctx); err != nil {
			s.logger.Error("failed to send streak reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.spec, err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("spec", s.spec))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")
	return nil
}

// SendStreakReminders notifies every user whose streak is at risk and
// returns how many reminders were sent.
func (s *ReminderService) SendStreakReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errors.New("notifier not initialized")
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	const maxConcurrent = 10
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sent := 0

	for _, u := range users {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{} // Acquire

		go func() {
			defer wg.Done()
			defer func() { <-sem }() // Release

			ok, err := s.remind(ctx, u)
			if err != nil {
				s.logger.Error("failed to process reminder",
					zap.Int64("user_id", u.ID),
					zap.Error(err))
				return
			}
			if ok {
				mu.Lock()
				sent++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	s.logger.Info("streak reminders processed",
		zap.Int("users", len(users)),
		zap.Int("sent", sent),
	)
	return sent, ctx.Err()
}

func (s *ReminderService) remind(ctx context.Context, u *entities.User) (bool, error) {
	state, err := s.progress.State(ctx, u.ID)
	if err != nil {
		return false, fmt.Errorf("load progress: %w", err)
	}

	run, atRisk := entities.StreakAtRisk(state.DailySolves, s.progress.WindowDays(), s.progress.Now())
	if !atRisk {
		return false, nil
	}

	reminder := entities.StreakReminder{
		UserID:        u.ID,
		ChatID:        u.ChatID,
		CurrentStreak: run,
		SolvedTotal:   len(state.Solved),
	}
	if err = s.notifier.SendStreakReminder(u.ChatID, reminder); err != nil {
		return false, fmt.Errorf("send notification: %w", err)
	}

	s.logger.Debug("streak reminder sent",
		zap.Int64("user_id", u.ID),
		zap.Int("streak", run),
	)
	return true, nil
}
