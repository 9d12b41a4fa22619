package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// botHeatmapDays keeps the heatmap narrow enough for a phone screen.
const botHeatmapDays = 17 * 7

type Handler struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger

	userService       UserService
	sheetService      SheetService
	progressService   ProgressService
	codeforcesService CodeforcesService
	contestService    ContestService
	adminService      AdminService
	resetService      ResetService

	wg sync.WaitGroup // background Codeforces syncs
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	userService UserService,
	sheetService SheetService,
	progressService ProgressService,
	codeforcesService CodeforcesService,
	contestService ContestService,
	adminService AdminService,
	resetService ResetService,
) *Handler {
	return &Handler{
		bot:               bot,
		logger:            logger,
		userService:       userService,
		sheetService:      sheetService,
		progressService:   progressService,
		codeforcesService: codeforcesService,
		contestService:    contestService,
		adminService:      adminService,
		resetService:      resetService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			h.wg.Wait()
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	from := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.userService.EnsureUser(ctx, from.ID, chatID); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if !update.Message.IsCommand() {
		_ = h.send(newMessage(chatID, helpMessage()))
		return
	}

	args := update.Message.CommandArguments()

	var fn HandlerFunc
	switch update.Message.Command() {
	case "start":
		fn = h.handleStart()
	case "help":
		fn = h.handleHelp()
	case "sheet":
		fn = h.handleSheet(from.ID)
	case "day":
		fn = h.handleDay(from.ID, args)
	case "find":
		fn = h.handleFind(from.ID, args)
	case "unsolved":
		fn = h.handleUnsolved(from.ID)
	case "bookmarks":
		fn = h.handleBookmarks(from.ID)
	case "stats":
		fn = h.handleStats(from.ID)
	case "heatmap":
		fn = h.handleHeatmap(from.ID)
	case "calendar":
		fn = h.handleCalendar(from.ID, args)
	case "topics":
		fn = h.handleTopics(from.ID)
	case "cf":
		fn = h.handleCodeforces(from.ID, args)
	case "disconnect":
		fn = h.handleDisconnect(from.ID)
	case "contests":
		fn = h.handleContests()
	case "reset":
		fn = h.handleReset()
	case "admin":
		fn = h.handleAdminLogin(update.Message.MessageID, args)
	case "logout":
		fn = h.handleAdminLogout()
	case "tasks":
		fn = h.handleTasks()
	case "addtask":
		fn = h.handleAddTask(args)
	case "edittask":
		fn = h.handleEditTask(args)
	case "deltask":
		fn = h.handleDeleteTask(args)
	default:
		fn = func(_ context.Context, chatID int64) error {
			return h.send(newPlainMessage(chatID, msgUnknownCommand))
		}
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
