package service

import (
	"context"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
)

// ProgressStateRepository persists one progress document per user.
// Get returns entities.ErrStateNotFound or entities.ErrMalformedState when
// there is nothing usable stored.
type ProgressStateRepository interface {
	Get(ctx context.Context, userID int64) (*entities.ProgressState, error)
	Save(ctx context.Context, userID int64, state *entities.ProgressState) error
	Delete(ctx context.Context, userID int64) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*entities.User, error)
	SetCodeforcesHandle(ctx context.Context, userID int64, handle string) error
	ListAll(ctx context.Context) ([]*entities.User, error)
}

type AdminTaskRepository interface {
	List(ctx context.Context) ([]entities.AdminTask, error)
	Get(ctx context.Context, id string) (*entities.AdminTask, error)
	Create(ctx context.Context, task *entities.AdminTask) error
	Update(ctx context.Context, task *entities.AdminTask) error
	Delete(ctx context.Context, id string) error
}

// ResetRepository wipes everything stored for a user.
type ResetRepository interface {
	ResetUser(ctx context.Context, userID int64) error
}

// Catalog is the read-only 31-day sheet.
type Catalog interface {
	Days() []entities.DayPlan
	GetDay(day int) (*entities.DayPlan, error)
	Problems() []entities.SheetProblem
	Total() int
}

type ContestSource interface {
	GetAll() []entities.Contest
}

// ProfileFetcher loads public Codeforces data for a handle.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, handle string) (*codeforces.Profile, error)
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendStreakReminder(chatID int64, reminder entities.StreakReminder) error
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time
