package rest

import (
	"context"
	"time"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

type SheetService interface {
	Days() []entities.DayPlan
	Day(day int) (*entities.DayPlan, error)
	ProblemStats() entities.ProblemStats
	Topics() []string
	Filter(state *entities.ProgressState, opts service.FilterOptions) []entities.SheetProblem
	TopicProgress(state *entities.ProgressState) []service.TopicProgress
	SolvedByDifficulty(state *entities.ProgressState) entities.ProblemStats
	RatingProgress(state *entities.ProgressState, rating *int) service.RatingProgress
	Completion(state *entities.ProgressState) int
}

type ProgressService interface {
	Now() time.Time
	State(ctx context.Context, userID int64) (*entities.ProgressState, error)
	GetStats(ctx context.Context, userID int64) (*service.ProgressStats, error)
	Heatmap(ctx context.Context, userID int64, days int) ([][]entities.DayCell, error)
	MonthCalendar(ctx context.Context, userID int64, year int, month time.Month) ([]entities.MonthCell, error)
}

type ContestService interface {
	Upcoming(now time.Time) []entities.Contest
}

type TaskLister interface {
	ListTasks(ctx context.Context) ([]entities.AdminTask, error)
}
