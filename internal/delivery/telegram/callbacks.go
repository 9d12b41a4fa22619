package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/cp31-tracker/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answer(cb.ID, "")
		return
	}

	var (
		chatID = cb.Message.Chat.ID
		msgID  = cb.Message.MessageID
		userID = cb.From.ID
		data   = decodeCallback(cb.Data)
		notice string
		err    error
	)

	switch data.Action {
	case actionSheet:
		err = h.editSheet(ctx, chatID, msgID, userID)

	case actionDay:
		day, ok := data.intParam(0)
		if !ok {
			h.logger.Warn("invalid day callback", zap.String("data", cb.Data))
			break
		}
		err = h.editDay(ctx, chatID, msgID, userID, day)

	case actionSolve, actionAttempt, actionBookmark:
		notice, err = h.toggleCallback(ctx, chatID, msgID, userID, data)

	case actionStats:
		var text string
		if text, err = h.statsView(ctx, userID); err == nil {
			edit := newEdit(chatID, msgID, text)
			kb := buildStatsKeyboard()
			edit.ReplyMarkup = &kb
			h.edit(edit)
		}

	case actionCalendar:
		year, okYear := data.intParam(0)
		month, okMonth := data.intParam(1)
		if !okYear || !okMonth || month < 1 || month > 12 {
			h.logger.Warn("invalid calendar callback", zap.String("data", cb.Data))
			break
		}
		var text string
		var kb tgbotapi.InlineKeyboardMarkup
		if text, kb, err = h.calendarView(ctx, userID, year, time.Month(month)); err == nil {
			edit := newEdit(chatID, msgID, text)
			edit.ReplyMarkup = &kb
			h.edit(edit)
		}

	case actionRefresh:
		err = h.startSync(ctx, chatID, userID, func(ctx context.Context) (*service.SyncResult, error) {
			return h.codeforcesService.Refresh(ctx, userID)
		})

	case actionReset:
		notice, err = h.resetCallback(ctx, chatID, msgID, userID, data.param(0))

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		text, known := userMessage(err)
		if !known {
			h.logger.Error("callback failed",
				zap.Int64("user_id", userID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
		}
		notice = text
	}

	// Remove the user's "clock".
	h.answer(cb.ID, notice)
}

func (h *Handler) editSheet(ctx context.Context, chatID int64, msgID int, userID int64) error {
	text, kb, err := h.sheetView(ctx, userID)
	if err != nil {
		return err
	}

	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = &kb
	h.edit(edit)
	return nil
}

func (h *Handler) editDay(ctx context.Context, chatID int64, msgID int, userID int64, day int) error {
	text, kb, err := h.dayView(ctx, userID, day)
	if err != nil {
		return err
	}

	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = &kb
	h.edit(edit)
	return nil
}

// toggleCallback flips one flag of a problem and redraws its day.
func (h *Handler) toggleCallback(ctx context.Context, chatID int64, msgID int, userID int64, data callbackData) (string, error) {
	day, ok := data.intParam(0)
	problemID := data.param(1)
	if !ok || problemID == "" {
		h.logger.Warn("invalid toggle callback", zap.String("data", data.Raw))
		return "", nil
	}

	var (
		on     bool
		err    error
		notice string
	)
	switch data.Action {
	case actionSolve:
		on, err = h.progressService.ToggleSolved(ctx, userID, problemID)
		notice = pick(on, "✅ Solved!", "Marked as unsolved")
	case actionAttempt:
		on, err = h.progressService.ToggleAttempted(ctx, userID, problemID)
		notice = pick(on, "🟡 Marked as attempted", "Attempt cleared")
	case actionBookmark:
		on, err = h.progressService.ToggleBookmark(ctx, userID, problemID)
		notice = pick(on, "🔖 Bookmarked", "Bookmark removed")
	}
	if err != nil {
		return "", err
	}

	if err = h.editDay(ctx, chatID, msgID, userID, day); err != nil {
		return "", err
	}
	return notice, nil
}

func (h *Handler) resetCallback(ctx context.Context, chatID int64, msgID int, userID int64, choice string) (string, error) {
	if choice != resetConfirm {
		h.edit(tgbotapi.NewEditMessageText(chatID, msgID, msgResetCancelled))
		return "", nil
	}

	if err := h.resetService.ResetUser(ctx, userID); err != nil {
		return "", err
	}

	h.logger.Info("user progress reset", zap.Int64("user_id", userID))
	h.edit(tgbotapi.NewEditMessageText(chatID, msgID, msgResetDone))
	return "", nil
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func (h *Handler) answer(callbackID, text string) {
	h.request(tgbotapi.NewCallback(callbackID, text))
}

// edit sends an edit and ignores Telegram's complaint when nothing changed.
func (h *Handler) edit(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil && !strings.Contains(err.Error(), "message is not modified") {
		h.logger.Error("failed to edit telegram message", zap.Error(err))
	}
}

// request is for API calls whose result is a bool rather than a message.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed", zap.Error(err))
	}
}
