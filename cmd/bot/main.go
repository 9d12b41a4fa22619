package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/cp31-tracker/internal/codeforces"
	"github.com/aliskhannn/cp31-tracker/internal/config"
	"github.com/aliskhannn/cp31-tracker/internal/delivery/rest"
	"github.com/aliskhannn/cp31-tracker/internal/delivery/telegram"
	"github.com/aliskhannn/cp31-tracker/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/cp31-tracker/internal/infra/postgres/repository"
	"github.com/aliskhannn/cp31-tracker/internal/logger"
	"github.com/aliskhannn/cp31-tracker/internal/repository"
	"github.com/aliskhannn/cp31-tracker/internal/service"
	"github.com/aliskhannn/cp31-tracker/internal/storage"
)

const shutdownTimeout = 10 * time.Second

var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "sheet", Description: "Show the 31-day sheet"},
	{Command: "day", Description: "Open a day (usage: /day 5)"},
	{Command: "find", Description: "Search problems (usage: /find sum rating:800)"},
	{Command: "unsolved", Description: "List unsolved problems"},
	{Command: "bookmarks", Description: "List bookmarked problems"},
	{Command: "stats", Description: "Show progress and streaks"},
	{Command: "heatmap", Description: "Show the activity heatmap"},
	{Command: "calendar", Description: "Show a month calendar (usage: /calendar 2026-03)"},
	{Command: "topics", Description: "Show progress per topic"},
	{Command: "cf", Description: "Connect or refresh a Codeforces handle"},
	{Command: "disconnect", Description: "Forget the Codeforces handle"},
	{Command: "contests", Description: "Show upcoming contests"},
	{Command: "tasks", Description: "Show curated daily tasks"},
	{Command: "reset", Description: "Reset all progress"},
	{Command: "help", Description: "Help"},
}

// stores groups the persistence backends selected by the storage driver.
type stores struct {
	progress service.ProgressStateRepository
	users    service.UserRepository
	tasks    service.AdminTaskRepository
	reset    service.ResetRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, lg); err != nil {
		lg.Fatal("application stopped with error", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	catalog, err := repository.NewCatalogRepository(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	contests, err := repository.NewContestRepository(cfg.ContestsPath, time.Now())
	if err != nil {
		return fmt.Errorf("load contests: %w", err)
	}

	st, err := openStores(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer st.close()

	profiles := storage.NewProfileStorage()
	cfClient := codeforces.NewClient(codeforces.Config{
		BaseURL:          cfg.Codeforces.BaseURL,
		Timeout:          cfg.Codeforces.Timeout,
		SubmissionsCount: cfg.Codeforces.SubmissionsCount,
	})

	progressService := service.NewProgressService(st.progress, cfg.Location, cfg.StreakWindowDays, lg)
	sheetService := service.NewSheetService(catalog)
	userService := service.NewUserService(st.users, lg)
	contestService := service.NewContestService(contests)
	codeforcesService := service.NewCodeforcesService(cfClient, progressService, st.users, storage.NewFetchRegistry(), profiles, lg)
	adminService := service.NewAdminService(service.NewBcryptAuthenticator(cfg.AdminPasswordHash), storage.NewAdminSessionStorage(), st.tasks, lg)
	resetService := service.NewResetService(st.reset, progressService, profiles)
	reminderService := service.NewReminderService(st.users, progressService, cfg.Reminders.Spec, lg)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		sheetService,
		progressService,
		codeforcesService,
		contestService,
		adminService,
		resetService,
	)
	reminderService.SetNotifier(handler)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := handler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegram handler: %w", err)
		}
		return nil
	})

	if cfg.Reminders.Enabled {
		g.Go(func() error {
			return reminderService.Start(gctx)
		})
	}

	if cfg.HTTP.Enabled {
		server := rest.NewServer(lg, sheetService, progressService, contestService, adminService, cfg.HeatmapDays)

		g.Go(func() error {
			if err := server.Listen(cfg.HTTP.Addr); err != nil {
				return fmt.Errorf("http api: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func openStores(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, err
		}
		if err = postgres.Migrate(dsn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		lg.Info("using postgres storage")

		return &stores{
			progress: pgrepo.NewProgressRepository(pool),
			users:    pgrepo.NewUserRepository(pool),
			tasks:    pgrepo.NewAdminTaskRepository(pool),
			reset:    pgrepo.NewResetRepository(postgres.NewTransactor(pool)),
			close:    pool.Close,
		}, nil

	default:
		progress := repository.NewProgressRepository(cfg.Storage.Dir)
		users, err := repository.NewUserRepository(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("user store: %w", err)
		}
		tasks, err := repository.NewAdminTaskRepository(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("task store: %w", err)
		}
		lg.Info("using file storage", zap.String("dir", cfg.Storage.Dir))

		return &stores{
			progress: progress,
			users:    users,
			tasks:    tasks,
			reset:    repository.NewResetRepository(progress, users),
			close:    func() {},
		}, nil
	}
}
