package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/cp31-tracker/internal/domain/entities"
	"github.com/aliskhannn/cp31-tracker/internal/service"
)

var errUsage = errors.New("invalid command arguments")

func (h *Handler) handleStart() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		msg := newMessage(chatID, welcomeMessage())
		kb := buildSheetKeyboard(h.sheetService.Days())
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

func (h *Handler) handleHelp() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage()))
	}
}

func (h *Handler) handleSheet(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, kb, err := h.sheetView(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

// handleDay shows the problems of one day with toggle buttons.
func (h *Handler) handleDay(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseDay))
		}

		text, kb, err := h.dayView(ctx, userID, n)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

func (h *Handler) handleFind(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		opts, err := parseFindArgs(args)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseFind))
		}

		state, err := h.progressService.State(ctx, userID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		title := "🔎 Results"
		if opts.Query != "" {
			title = fmt.Sprintf("🔎 %q", opts.Query)
		}
		if opts.Rating != nil {
			title += fmt.Sprintf(" rated %d-%d", *opts.Rating, *opts.Rating+99)
		}

		return h.send(newMessage(chatID, renderProblemList(title, h.sheetService.Filter(state, opts), state)))
	}
}

func (h *Handler) handleUnsolved(userID int64) HandlerFunc {
	return h.listHandler(userID, "⏳ Unsolved", service.FilterOptions{Tab: service.TabUnsolved})
}

func (h *Handler) handleBookmarks(userID int64) HandlerFunc {
	return h.listHandler(userID, "🔖 Bookmarks", service.FilterOptions{Tab: service.TabBookmarked})
}

func (h *Handler) listHandler(userID int64, title string, opts service.FilterOptions) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		state, err := h.progressService.State(ctx, userID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		return h.send(newMessage(chatID, renderProblemList(title, h.sheetService.Filter(state, opts), state)))
	}
}

func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		text, err := h.statsView(ctx, userID)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = buildStatsKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleHeatmap(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		weeks, err := h.progressService.Heatmap(ctx, userID, botHeatmapDays)
		if err != nil {
			return fmt.Errorf("build heatmap: %w", err)
		}
		stats, err := h.progressService.GetStats(ctx, userID)
		if err != nil {
			return fmt.Errorf("get stats: %w", err)
		}
		return h.send(newMessage(chatID, renderHeatmap(weeks, stats)))
	}
}

func (h *Handler) handleCalendar(userID int64, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		year, month, err := parseMonthArg(args, h.progressService.Now())
		if err != nil {
			return h.send(newPlainMessage(chatID, msgUseCalendar))
		}

		text, kb, err := h.calendarView(ctx, userID, year, month)
		if err != nil {
			return err
		}

		msg := newMessage(chatID, text)
		msg.ReplyMarkup = kb
		return h.send(msg)
	}
}

func (h *Handler) handleTopics(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		state, err := h.progressService.State(ctx, userID)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		return h.send(newMessage(chatID, renderTopics(h.sheetService.TopicProgress(state))))
	}
}

func (h *Handler) handleContests() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		now := h.progressService.Now()
		return h.send(newMessage(chatID, renderContests(h.contestService.Upcoming(now), now)))
	}
}

func (h *Handler) handleReset() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		msg := newPlainMessage(chatID, msgResetConfirmation)
		msg.ReplyMarkup = buildResetKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) sheetView(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	state, err := h.progressService.State(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("load progress: %w", err)
	}

	days := h.sheetService.Days()
	return renderSheet(days, state, h.sheetService.Completion(state)), buildSheetKeyboard(days), nil
}

func (h *Handler) dayView(ctx context.Context, userID int64, n int) (string, tgbotapi.InlineKeyboardMarkup, error) {
	day, err := h.sheetService.Day(n)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("get day %d: %w", n, err)
	}

	state, err := h.progressService.State(ctx, userID)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("load progress: %w", err)
	}

	return renderDay(day, state), buildDayKeyboard(day, state, len(h.sheetService.Days())), nil
}

func (h *Handler) statsView(ctx context.Context, userID int64) (string, error) {
	state, err := h.progressService.State(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load progress: %w", err)
	}
	stats, err := h.progressService.GetStats(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get stats: %w", err)
	}

	return renderStats(statsView{
		Stats:      stats,
		Completion: h.sheetService.Completion(state),
		Solved:     h.sheetService.SolvedByDifficulty(state),
		Totals:     h.sheetService.ProblemStats(),
		Week:       service.LastDays(state.DailySolves, 7, h.progressService.Now()),
		Best:       service.FindBestDay(state.DailySolves),
	}), nil
}

func (h *Handler) calendarView(ctx context.Context, userID int64, year int, month time.Month) (string, tgbotapi.InlineKeyboardMarkup, error) {
	cells, err := h.progressService.MonthCalendar(ctx, userID, year, month)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, fmt.Errorf("build calendar: %w", err)
	}

	today := entities.DateKey(h.progressService.Now())
	return renderCalendar(year, month, cells, today), buildCalendarKeyboard(year, month), nil
}

// parseFindArgs splits "/find" arguments into a name query and an optional
// "rating:N" token selecting the bucket [N, N+100).
func parseFindArgs(args string) (service.FilterOptions, error) {
	opts := service.FilterOptions{Tab: service.TabAll}

	var words []string
	for _, field := range strings.Fields(args) {
		value, ok := strings.CutPrefix(strings.ToLower(field), "rating:")
		if !ok {
			words = append(words, field)
			continue
		}

		rating, err := strconv.Atoi(value)
		if err != nil || rating <= 0 {
			return opts, errUsage
		}
		opts.Rating = &rating
	}

	opts.Query = strings.Join(words, " ")
	if opts.Query == "" && opts.Rating == nil {
		return opts, errUsage
	}
	return opts, nil
}

// parseMonthArg reads "YYYY-MM"; an empty argument means the month of now.
func parseMonthArg(args string, now time.Time) (int, time.Month, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return now.Year(), now.Month(), nil
	}

	t, err := time.Parse("2006-01", args)
	if err != nil {
		return 0, 0, errUsage
	}
	return t.Year(), t.Month(), nil
}
