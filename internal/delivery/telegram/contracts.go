package telegram

import (
	"context"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type SheetService interface {
	Days() []entities.DayPlan
	Day(day int) (*entities.DayPlan, error)
	ProblemStats() entities.ProblemStats
	Filter(state *entities.ProgressState, opts service.FilterOptions) []entities.SheetProblem
	TopicProgress(state *entities.ProgressState) []service.TopicProgress
	SolvedByDifficulty(state *entities.ProgressState) entities.ProblemStats
	Completion(state *entities.ProgressState) int
}

type ProgressService interface {
	Now() time.Time
	State(ctx context.Context, userID int64) (*entities.ProgressState, error)
	ToggleSolved(ctx context.Context, userID int64, problemID string) (bool, error)
	ToggleAttempted(ctx context.Context, userID int64, problemID string) (bool, error)
	ToggleBookmark(ctx context.Context, userID int64, problemID string) (bool, error)
	GetStats(ctx context.Context, userID int64) (*service.ProgressStats, error)
	Heatmap(ctx context.Context, userID int64, days int) ([][]entities.DayCell, error)
	MonthCalendar(ctx context.Context, userID int64, year int, month time.Month) ([]entities.MonthCell, error)
}

type CodeforcesService interface {
	Sync(ctx context.Context, userID int64, handle string) (*service.SyncResult, error)
	Refresh(ctx context.Context, userID int64) (*service.SyncResult, error)
	Disconnect(ctx context.Context, userID int64) error
}

type ContestService interface {
	Upcoming(now time.Time) []entities.Contest
}

type AdminService interface {
	Login(chatID int64, password string) error
	Logout(chatID int64)
	IsAdmin(chatID int64) bool
	ListTasks(ctx context.Context) ([]entities.AdminTask, error)
	AddTask(ctx context.Context, chatID int64, in service.NewTask) (*entities.AdminTask, error)
	UpdateTask(ctx context.Context, chatID int64, id string, patch entities.AdminTaskPatch) (*entities.AdminTask, error)
	DeleteTask(ctx context.Context, chatID int64, id string) error
}

type ResetService interface {
	ResetUser(ctx context.Context, userID int64) error
}
