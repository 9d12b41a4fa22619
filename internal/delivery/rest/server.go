package rest

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const maxHeatmapDays = 3660

// Server is the read-only JSON API over the sheet, user progress and contests.
type Server struct {
	app    *fiber.App
	logger *zap.Logger

	sheetService    SheetService
	progressService ProgressService
	contestService  ContestService
	taskLister      TaskLister
	heatmapDays     int
}

func NewServer(
	logger *zap.Logger,
	sheetService SheetService,
	progressService ProgressService,
	contestService ContestService,
	taskLister TaskLister,
	heatmapDays int,
) *Server {
	s := &Server{
		logger:          logger,
		sheetService:    sheetService,
		progressService: progressService,
		contestService:  contestService,
		taskLister:      taskLister,
		heatmapDays:     heatmapDays,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "cp31-tracker",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	s.app.Use(s.logRequests)

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Get("/catalog", s.getCatalog)
	api.Get("/catalog/days/:day", s.getDay)
	api.Get("/catalog/problems", s.findProblems)
	api.Get("/contests", s.getContests)
	api.Get("/tasks", s.getTasks)

	users := api.Group("/users/:id")
	users.Get("/stats", s.getStats)
	users.Get("/heatmap", s.getHeatmap)
	users.Get("/calendar/:year/:month", s.getCalendar)
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http api listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.logger.Debug("http request",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("took", time.Since(start)),
	)
	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleError renders every failure as {"error": "..."}. Errors that are not
// *fiber.Error are logged and hidden behind a 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		s.logger.Error("http handler failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(code).JSON(errorResponse{Error: message})
}
