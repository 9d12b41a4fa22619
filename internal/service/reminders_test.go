package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

func TestSendStreakReminders(t *testing.T) {
	ctx := context.Background()
	repo := newMemProgressRepo()

	atRisk := entities.NewProgressState()
	atRisk.Solved = entities.NewStringSet("1a", "1b")
	atRisk.DailySolves = entities.DailySolves{"2026-03-09": 1, "2026-03-08": 1}
	require.NoError(t, repo.Save(ctx, 1, atRisk))

	doneToday := entities.NewProgressState()
	doneToday.DailySolves = entities.DailySolves{"2026-03-10": 1, "2026-03-09": 1}
	require.NoError(t, repo.Save(ctx, 2, doneToday))

	users := newMemUserRepo(
		&entities.User{ID: 1, ChatID: 100},
		&entities.User{ID: 2, ChatID: 200},
		&entities.User{ID: 3, ChatID: 300}, // never solved anything
	)

	notifier := &recordingNotifier{}
	svc := NewReminderService(users, newProgressService(repo), "0 20 * * *", zap.NewNop())
	svc.SetNotifier(notifier)

	sent, err := svc.SendStreakReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, entities.StreakReminder{UserID: 1, ChatID: 100, CurrentStreak: 2, SolvedTotal: 2}, notifier.sent[0])
}

func TestSendStreakRemindersWithoutNotifier(t *testing.T) {
	svc := NewReminderService(newMemUserRepo(), newProgressService(newMemProgressRepo()), "0 20 * * *", zap.NewNop())

	_, err := svc.SendStreakReminders(context.Background())
	assert.Error(t, err)
}

func TestSendStreakRemindersNotifierFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMemProgressRepo()

	state := entities.NewProgressState()
	state.DailySolves = entities.DailySolves{"2026-03-09": 1}
	require.NoError(t, repo.Save(ctx, 1, state))

	svc := NewReminderService(newMemUserRepo(&entities.User{ID: 1, ChatID: 100}), newProgressService(repo), "0 20 * * *", zap.NewNop())
	svc.SetNotifier(&recordingNotifier{err: errBoom})

	sent, err := svc.SendStreakReminders(ctx)
	require.NoError(t, err, "per-user failures are logged, not returned")
	assert.Equal(t, 0, sent)
}

func TestReminderStartRejectsBadSpec(t *testing.T) {
	svc := NewReminderService(newMemUserRepo(), newProgressService(newMemProgressRepo()), "not a cron", zap.NewNop())
	assert.Error(t, svc.Start(context.Background()))
}
