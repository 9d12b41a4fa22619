package rest

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/repository"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

type catalogResponse struct {
	Days   []entities.DayPlan    `json:"days"`
	Stats  entities.ProblemStats `json:"stats"`
	Topics []string              `json:"topics"`
}

type statsResponse struct {
	Stats              *service.ProgressStats  `json:"stats"`
	Completion         int                     `json:"completion"`
	SolvedByDifficulty entities.ProblemStats   `json:"solvedByDifficulty"`
	Totals             entities.ProblemStats   `json:"totals"`
	Topics             []service.TopicProgress `json:"topics"`
	RatingProgress     service.RatingProgress  `json:"ratingProgress"`
	LastSevenDays      []service.DayActivity   `json:"lastSevenDays"`
	BestDay            service.BestDay         `json:"bestDay"`
}

type heatmapResponse struct {
	Days  int                  `json:"days"`
	Weeks [][]entities.DayCell `json:"weeks"`
}

type calendarResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Cells []entities.MonthCell `json:"cells"`
}

type contestResponse struct {
	entities.Contest
	Status   entities.ContestStatus `json:"status"`
	StartsIn entities.Countdown     `json:"startsIn"`
	Length   string                 `json:"length"`
}

type taskResponse struct {
	ID          string              `json:"id"`
	ProblemLink string              `json:"problemLink"`
	ProblemName string              `json:"problemName"`
	Topic       string              `json:"topic"`
	Difficulty  entities.Difficulty `json:"difficulty"`
	Platform    entities.Platform   `json:"platform"`
	DateAdded   time.Time           `json:"dateAdded"`
	Notes       string              `json:"notes,omitempty"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) getCatalog(c *fiber.Ctx) error {
	return c.JSON(catalogResponse{
		Days:   s.sheetService.Days(),
		Stats:  s.sheetService.ProblemStats(),
		Topics: s.sheetService.Topics(),
	})
}

func (s *Server) getDay(c *fiber.Ctx) error {
	n, err := c.ParamsInt("day")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
	}

	day, err := s.sheetService.Day(n)
	if err != nil {
		if errors.Is(err, repository.ErrDayNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(day)
}

// findProblems searches the sheet by name and rating bucket, ignoring user state.
func (s *Server) findProblems(c *fiber.Ctx) error {
	opts := service.FilterOptions{
		Query: strings.TrimSpace(c.Query("q")),
		Tab:   service.TabAll,
	}
	if c.Query("rating") != "" {
		rating := c.QueryInt("rating", -1)
		if rating <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "rating must be a positive number")
		}
		opts.Rating = &rating
	}

	problems := s.sheetService.Filter(entities.NewProgressState(), opts)
	if problems == nil {
		problems = []entities.SheetProblem{}
	}
	return c.JSON(fiber.Map{"problems": problems})
}

func (s *Server) getStats(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var rating *int
	if c.Query("rating") != "" {
		r := c.QueryInt("rating", -1)
		if r <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "rating must be a positive number")
		}
		rating = &r
	}

	ctx := c.UserContext()
	state, err := s.progressService.State(ctx, userID)
	if err != nil {
		return err
	}
	stats, err := s.progressService.GetStats(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(statsResponse{
		Stats:              stats,
		Completion:         s.sheetService.Completion(state),
		SolvedByDifficulty: s.sheetService.SolvedByDifficulty(state),
		Totals:             s.sheetService.ProblemStats(),
		Topics:             s.sheetService.TopicProgress(state),
		RatingProgress:     s.sheetService.RatingProgress(state, rating),
		LastSevenDays:      service.LastDays(state.DailySolves, 7, s.progressService.Now()),
		BestDay:            service.FindBestDay(state.DailySolves),
	})
}

func (s *Server) getHeatmap(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	days := c.QueryInt("days", s.heatmapDays)
	if days <= 0 || days > maxHeatmapDays {
		return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 3660")
	}

	weeks, err := s.progressService.Heatmap(c.UserContext(), userID, days)
	if err != nil {
		return err
	}
	return c.JSON(heatmapResponse{Days: days, Weeks: weeks})
}

func (s *Server) getCalendar(c *fiber.Ctx) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	year, err := c.ParamsInt("year")
	if err != nil || year < 1970 || year > 9999 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid year")
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid month")
	}

	cells, err := s.progressService.MonthCalendar(c.UserContext(), userID, year, time.Month(month))
	if err != nil {
		return err
	}
	return c.JSON(calendarResponse{Year: year, Month: month, Cells: cells})
}

func (s *Server) getContests(c *fiber.Ctx) error {
	now := s.progressService.Now()

	contests := s.contestService.Upcoming(now)
	resp := make([]contestResponse, 0, len(contests))
	for _, ct := range contests {
		resp = append(resp, contestResponse{
			Contest:  ct,
			Status:   ct.Status(now),
			StartsIn: entities.TimeUntil(ct.StartTime, now),
			Length:   entities.FormatDuration(ct.DurationMinutes),
		})
	}
	return c.JSON(fiber.Map{"contests": resp})
}

func (s *Server) getTasks(c *fiber.Ctx) error {
	tasks, err := s.taskLister.ListTasks(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, taskResponse(t))
	}
	return c.JSON(fiber.Map{"tasks": resp})
}

func userIDParam(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "user id must be a positive number")
	}
	return int64(id), nil
}
